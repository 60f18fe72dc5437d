// Package predict runs the regression and classification models on an
// encoded vehicle.
package predict

import (
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/catalog"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/encoder"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/model"
)

// ErrEmptyOutput is returned when a model produces no output for the row.
var ErrEmptyOutput = errors.New("model returned no output")

// Service encodes a Vehicle once and feeds the same row to both models.
// Everything it holds is read-only after NewService, so it is safe to share.
type Service struct {
	encoder    *encoder.Encoder
	regressor  model.Regressor
	classifier model.Classifier
	cache      *lru.Cache[dal.Vehicle, dal.Prediction]
	log        *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithCache memoises up to size predictions. Zero or less disables it.
func WithCache(size int) Option {
	return func(s *Service) error {
		if size <= 0 {
			s.cache = nil
			return nil
		}
		c, err := lru.New[dal.Vehicle, dal.Prediction](size)
		if err != nil {
			return fmt.Errorf("create prediction cache: %w", err)
		}
		s.cache = c
		return nil
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) error {
		if l != nil {
			s.log = l
		}
		return nil
	}
}

// NewService wires the encoder to both models.
func NewService(enc *encoder.Encoder, reg model.Regressor, clf model.Classifier, opts ...Option) (*Service, error) {
	if enc == nil {
		return nil, errors.New("encoder is required")
	}
	if reg == nil {
		return nil, errors.New("regressor is required")
	}
	if clf == nil {
		return nil, errors.New("classifier is required")
	}

	s := &Service{
		encoder:    enc,
		regressor:  reg,
		classifier: clf,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Catalog is the category catalog the service encodes with.
func (s *Service) Catalog() *catalog.Catalog {
	return s.encoder.Catalog()
}

// Schema is the feature layout the service encodes to.
func (s *Service) Schema() encoder.Schema {
	return s.encoder.Schema()
}

// Encode exposes the encoder for callers that want the raw row.
func (s *Service) Encode(v dal.Vehicle) encoder.Vector {
	return s.encoder.Encode(v)
}

// PredictPrice runs the regression model on one encoded row.
func (s *Service) PredictPrice(vec encoder.Vector) (float64, error) {
	out, err := s.regressor.Predict([][]float64{vec.Values()})
	if err != nil {
		return 0, fmt.Errorf("predict price: %w", err)
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("predict price: %w", ErrEmptyOutput)
	}
	return out[0], nil
}

// PredictClass runs the classification model on one encoded row.
func (s *Service) PredictClass(vec encoder.Vector) (dal.PriceCategory, error) {
	out, err := s.classifier.Predict([][]float64{vec.Values()})
	if err != nil {
		return 0, fmt.Errorf("predict class: %w", err)
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("predict class: %w", ErrEmptyOutput)
	}
	category, err := dal.ParsePriceCategory(out[0])
	if err != nil {
		return 0, fmt.Errorf("predict class: %w", err)
	}
	return category, nil
}

// Predict encodes v and runs both models on the same row.
func (s *Service) Predict(v dal.Vehicle) (dal.Prediction, error) {
	if s.cache != nil {
		if p, ok := s.cache.Get(v); ok {
			s.log.Debug("prediction cache hit", "vehicle", v)
			return p, nil
		}
	}

	for _, u := range encoder.UnknownValues(v, s.encoder.Catalog()) {
		s.log.Warn("value outside catalog encodes as all zeros", "field", u.Field, "value", u.Value)
	}

	vec := s.encoder.Encode(v)

	price, err := s.PredictPrice(vec)
	if err != nil {
		return dal.Prediction{}, err
	}
	category, err := s.PredictClass(vec)
	if err != nil {
		return dal.Prediction{}, err
	}

	p := dal.Prediction{Price: price, Category: category}
	if s.cache != nil {
		s.cache.Add(v, p)
	}
	s.log.Debug("prediction", "vehicle", v, "price", price, "category", category.String())
	return p, nil
}
