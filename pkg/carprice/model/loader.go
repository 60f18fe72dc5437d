package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Artifact types understood by the loaders.
const (
	TypeLinearRegression       = "linear_regression"
	TypeLogisticRegression     = "logistic_regression"
	TypeDecisionTreeRegressor  = "decision_tree_regressor"
	TypeDecisionTreeClassifier = "decision_tree_classifier"
)

// Artifact is the on-disk form of a fitted model. FeatureNamesIn mirrors the
// feature_names_in_ attribute of the training library.
type Artifact struct {
	Type           string     `json:"type" yaml:"type"`
	FeatureNamesIn []string   `json:"feature_names_in" yaml:"feature_names_in"`
	Coefficients   []float64  `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Intercept      float64    `json:"intercept,omitempty" yaml:"intercept,omitempty"`
	Threshold      float64    `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Nodes          []TreeNode `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

// ReadArtifact decodes the file at path. Files ending in .yaml or .yml are
// read as YAML, everything else as JSON.
func ReadArtifact(path string) (Artifact, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("read model artifact: %w", err)
	}

	var a Artifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(payload, &a)
	default:
		err = json.Unmarshal(payload, &a)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	return a, nil
}

// WriteArtifact encodes a as JSON or YAML depending on the extension of path.
func WriteArtifact(path string, a Artifact) error {
	var (
		payload []byte
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		payload, err = yaml.Marshal(a)
	default:
		payload, err = json.MarshalIndent(a, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

// LoadRegressor reads a regression artifact from path.
func LoadRegressor(path string) (Regressor, error) {
	a, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}
	return NewRegressor(a)
}

// LoadClassifier reads a classification artifact from path.
func LoadClassifier(path string) (Classifier, error) {
	a, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}
	return NewClassifier(a)
}

// NewRegressor builds the regressor described by a.
func NewRegressor(a Artifact) (Regressor, error) {
	switch a.Type {
	case TypeLinearRegression:
		if len(a.Coefficients) != len(a.FeatureNamesIn) {
			return nil, fmt.Errorf("%w: %d coefficients for %d features", ErrShapeMismatch, len(a.Coefficients), len(a.FeatureNamesIn))
		}
		return &LinearRegression{
			Features:     a.FeatureNamesIn,
			Coefficients: a.Coefficients,
			Intercept:    a.Intercept,
		}, nil
	case TypeDecisionTreeRegressor:
		return &DecisionTreeRegressor{Features: a.FeatureNamesIn, Nodes: a.Nodes}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, a.Type)
	}
}

// NewClassifier builds the classifier described by a.
func NewClassifier(a Artifact) (Classifier, error) {
	switch a.Type {
	case TypeLogisticRegression:
		if len(a.FeatureNamesIn) > 0 && len(a.Coefficients) != len(a.FeatureNamesIn) {
			return nil, fmt.Errorf("%w: %d coefficients for %d features", ErrShapeMismatch, len(a.Coefficients), len(a.FeatureNamesIn))
		}
		return &LogisticRegression{
			Features:     a.FeatureNamesIn,
			Coefficients: a.Coefficients,
			Intercept:    a.Intercept,
			Threshold:    a.Threshold,
		}, nil
	case TypeDecisionTreeClassifier:
		return &DecisionTreeClassifier{Features: a.FeatureNamesIn, Nodes: a.Nodes}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, a.Type)
	}
}
