package model

import "errors"

// TreeNode is one node of a flattened decision tree. Children are indexes
// into the node slice; leaves carry the prediction.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx" yaml:"feature_idx"`
	Threshold  float64 `json:"threshold" yaml:"threshold"`
	LeftChild  int     `json:"left_child" yaml:"left_child"`
	RightChild int     `json:"right_child" yaml:"right_child"`
	Value      float64 `json:"value" yaml:"value"`
	ClassLabel int     `json:"class_label" yaml:"class_label"`
	IsLeaf     bool    `json:"is_leaf" yaml:"is_leaf"`
}

type tree struct {
	nodes []TreeNode
	width int
}

func (t tree) leaf(features []float64) (TreeNode, error) {
	if len(t.nodes) == 0 {
		return TreeNode{}, ErrNotFitted
	}
	idx := 0
	for steps := 0; steps <= len(t.nodes); steps++ {
		node := t.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return TreeNode{}, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(t.nodes) {
			return TreeNode{}, errors.New("invalid tree state")
		}
	}
	return TreeNode{}, errors.New("invalid tree state: cycle")
}

func (t tree) check(rows [][]float64) error {
	if t.width > 0 {
		return checkWidth(rows, t.width)
	}
	return nil
}

// DecisionTreeRegressor predicts the Value of the leaf a row falls into.
type DecisionTreeRegressor struct {
	Features []string
	Nodes    []TreeNode
}

// FeatureNames returns the columns the tree was fitted on.
func (m *DecisionTreeRegressor) FeatureNames() []string {
	return append([]string(nil), m.Features...)
}

// Predict returns the leaf value of each row.
func (m *DecisionTreeRegressor) Predict(rows [][]float64) ([]float64, error) {
	t := tree{nodes: m.Nodes, width: len(m.Features)}
	if err := t.check(rows); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		node, err := t.leaf(r)
		if err != nil {
			return nil, err
		}
		out[i] = node.Value
	}
	return out, nil
}

// DecisionTreeClassifier predicts the ClassLabel of the leaf a row falls into.
type DecisionTreeClassifier struct {
	Features []string
	Nodes    []TreeNode
}

// FeatureNames returns the columns the tree was fitted on.
func (m *DecisionTreeClassifier) FeatureNames() []string {
	return append([]string(nil), m.Features...)
}

// Predict returns the leaf class label of each row.
func (m *DecisionTreeClassifier) Predict(rows [][]float64) ([]int, error) {
	t := tree{nodes: m.Nodes, width: len(m.Features)}
	if err := t.check(rows); err != nil {
		return nil, err
	}
	out := make([]int, len(rows))
	for i, r := range rows {
		node, err := t.leaf(r)
		if err != nil {
			return nil, err
		}
		out[i] = node.ClassLabel
	}
	return out, nil
}
