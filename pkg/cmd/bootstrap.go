package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/catalog"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/config"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/encoder"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/model"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/predict"
)

// bootstrap loads the config and both model artifacts and wires the
// prediction service. Any failure here is fatal to the command.
func bootstrap() (*config.Config, *predict.Service, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	reg, err := model.LoadRegressor(cfg.Models.Regression)
	if err != nil {
		return nil, nil, fmt.Errorf("load regression model: %w", err)
	}
	clf, err := model.LoadClassifier(cfg.Models.Classification)
	if err != nil {
		return nil, nil, fmt.Errorf("load classification model: %w", err)
	}

	schema := encoder.Schema(reg.FeatureNames())
	if len(schema) == 0 {
		return nil, nil, errors.New("regression model has no feature names")
	}

	if namer, ok := clf.(model.FeatureNamer); ok && len(namer.FeatureNames()) > 0 {
		if err := encoder.CheckAligned(schema, namer.FeatureNames()); err != nil {
			if cfg.Schema.Strict {
				return nil, nil, err
			}
			slog.Warn("classification model columns differ from the regression schema", "error", err)
		}
	}

	cat := catalog.Default()
	if err := encoder.Validate(cat, schema); err != nil {
		if cfg.Schema.Strict {
			return nil, nil, err
		}
		slog.Warn("category catalog and model schema disagree, unmatched columns encode as zero", "error", err)
	}

	svc, err := predict.NewService(
		encoder.New(cat, schema),
		reg,
		clf,
		predict.WithCache(cfg.Cache.Size),
		predict.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("models loaded",
		"regression", cfg.Models.Regression,
		"classification", cfg.Models.Classification,
		"features", len(schema),
	)
	return cfg, svc, nil
}
