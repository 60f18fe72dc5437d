package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/encoder"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/model"
)

var testSchema = []string{
	"horsepower", "city_mpg",
	"make_audi", "make_bmw", "make_honda", "make_mercedes", "make_toyota",
	"fuel_type_diesel", "fuel_type_essence",
	"num_doors_four", "num_doors_two",
	"body_style_hatchback", "body_style_sedan", "body_style_wagon",
}

// writeFixtures writes a linear price model of 3000 + 100*hp, an always
// expensive classifier and a config file pointing at both.
func writeFixtures(t *testing.T, schema []string, extra string) string {
	t.Helper()
	return writeModels(t, schema, model.Artifact{
		Type:           model.TypeLogisticRegression,
		FeatureNamesIn: schema,
		Coefficients:   make([]float64, len(schema)),
		Intercept:      5,
	}, extra)
}

func writeModels(t *testing.T, schema []string, classifier model.Artifact, extra string) string {
	t.Helper()
	dir := t.TempDir()

	coef := make([]float64, len(schema))
	coef[0] = 100
	reg := filepath.Join(dir, "regression_model.json")
	require.NoError(t, model.WriteArtifact(reg, model.Artifact{
		Type:           model.TypeLinearRegression,
		FeatureNamesIn: schema,
		Coefficients:   coef,
		Intercept:      3000,
	}))

	clf := filepath.Join(dir, "classification_model.yaml")
	require.NoError(t, model.WriteArtifact(clf, classifier))

	cfg := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("models:\n  regression: %s\n  classification: %s\n%s", reg, clf, extra)
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o600))
	return cfg
}

func run(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(append([]string{"--config", cfg, "--log-level", "error"}, args...))
	err := RootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

var toyotaArgs = []string{
	"--make", "toyota", "--fuel-type", "essence", "--num-doors", "four",
	"--body-style", "sedan", "--horsepower", "120", "--city-mpg", "30",
}

func TestPredictCommand(t *testing.T) {
	cfg := writeFixtures(t, testSchema, "")

	out, err := run(t, cfg, append([]string{"predict", "--json=false"}, toyotaArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Prix prédit : $15000.00")
	assert.Contains(t, out, "Catégorie de prix : Chère")
}

func TestPredictCommandJSON(t *testing.T) {
	cfg := writeFixtures(t, testSchema, "display:\n  language: en\n")

	out, err := run(t, cfg, append([]string{"predict", "--json"}, toyotaArgs...)...)
	require.NoError(t, err)

	var resp dal.PredictionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 15000.0, resp.Price)
	assert.Equal(t, "$15000.00", resp.PriceDisplay)
	assert.Equal(t, "expensive", resp.Category)
	assert.Equal(t, "Expensive", resp.Label)
	assert.Equal(t, "toyota", resp.Vehicle.Make)
}

func TestPredictCommandRejectsInvalidVehicle(t *testing.T) {
	cfg := writeFixtures(t, testSchema, "")

	args := append([]string{"predict", "--json=false"}, toyotaArgs...)
	args = append(args, "--horsepower", "9000")
	_, err := run(t, cfg, args...)
	assert.ErrorIs(t, err, dal.ErrOutOfBounds)
}

func TestPredictCommandMissingModel(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("models:\n  regression: /nonexistent/reg.json\n  classification: /nonexistent/clf.json\n"), 0o600))

	_, err := run(t, cfg, append([]string{"predict", "--json=false"}, toyotaArgs...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load regression model")
}

func TestSchemaCommand(t *testing.T) {
	schema := append(append([]string(nil), testSchema...), "make_volvo")
	cfg := writeFixtures(t, schema, "")

	out, err := run(t, cfg, "schema")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "  0  horsepower", lines[0])
	assert.Contains(t, out, " 14  make_volvo")
	assert.Contains(t, out, "drift  unknown:make_volvo")
}

func TestStrictSchemaFailsOnDrift(t *testing.T) {
	schema := append(append([]string(nil), testSchema...), "make_volvo")
	cfg := writeFixtures(t, schema, "schema:\n  strict: true\n")

	_, err := run(t, cfg, "schema")
	var drift *encoder.DriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, []string{"make_volvo"}, drift.UnknownToCatalog)
}

func TestInvalidConfig(t *testing.T) {
	cfg := writeFixtures(t, testSchema, "display:\n  language: de\n")

	_, err := run(t, cfg, "schema")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestVersionCommand(t *testing.T) {
	cfg := writeFixtures(t, testSchema, "")

	out, err := run(t, cfg, "version")
	require.NoError(t, err)
	assert.Equal(t, "carprice dev\n", out)
}

// reversedClassifier expects testSchema backwards and weighs its first column,
// body_style_wagon, so a sedan scores expensive only when rows are misaligned.
func reversedClassifier() model.Artifact {
	names := make([]string, len(testSchema))
	for i, col := range testSchema {
		names[len(testSchema)-1-i] = col
	}
	coef := make([]float64, len(names))
	coef[0] = 10
	return model.Artifact{
		Type:           model.TypeLogisticRegression,
		FeatureNamesIn: names,
		Coefficients:   coef,
		Intercept:      -5,
	}
}

func TestStrictSchemaFailsOnMisalignedClassifier(t *testing.T) {
	cfg := writeModels(t, testSchema, reversedClassifier(), "schema:\n  strict: true\n")

	_, err := run(t, cfg, append([]string{"predict", "--json=false"}, toyotaArgs...)...)
	assert.ErrorIs(t, err, encoder.ErrSchemaMismatch)
}

func TestMisalignedClassifierOnlyWarnsByDefault(t *testing.T) {
	cfg := writeModels(t, testSchema, reversedClassifier(), "")

	out, err := run(t, cfg, append([]string{"predict", "--json=false"}, toyotaArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Prix prédit : $15000.00")
}
