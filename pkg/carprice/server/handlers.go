package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/encoder"
)

// GetPrediction defines a GET handler that reads the vehicle from the query
// string and returns the predicted price and category
func (h *httpServer) GetPrediction(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()
	w.Header().Add("Content-Type", "application/json")

	var v dal.Vehicle
	var err error
	for _, field := range []struct {
		name string
		dst  *string
	}{
		{dal.FieldMake, &v.Make},
		{dal.FieldFuelType, &v.FuelType},
		{dal.FieldNumDoors, &v.NumDoors},
		{dal.FieldBodyStyle, &v.BodyStyle},
	} {
		*field.dst, err = validateCategory(w, vars, field.name)
		if err != nil {
			h.log.Warn("category validation failed", "field", field.name, "error", err)
			return
		}
	}

	v.Horsepower, err = validateHorsepower(w, vars)
	if err != nil {
		h.log.Warn("horsepower validation failed", "error", err)
		return
	}

	v.CityMPG, err = validateCityMPG(w, vars)
	if err != nil {
		h.log.Warn("city mpg validation failed", "error", err)
		return
	}

	h.respondPrediction(w, v)
}

// PostPrediction defines a POST handler that reads the vehicle from a JSON body
func (h *httpServer) PostPrediction(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")

	var v dal.Vehicle
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		h.log.Warn("invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := v.Validate(); err != nil {
		h.log.Warn("vehicle validation failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h.respondPrediction(w, v)
}

func (h *httpServer) respondPrediction(w http.ResponseWriter, v dal.Vehicle) {
	p, err := h.predictor.Predict(v)
	if err != nil {
		h.log.Error("prediction failed", "error", err, "vehicle", v)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, h.formatter.Response(v, p))
}

// GetCatalog lists the allowed values of every categorical field
func (h *httpServer) GetCatalog(w http.ResponseWriter, r *http.Request) {
	var resp dal.CatalogResponse
	for _, e := range h.predictor.Catalog().Entries() {
		resp.Fields = append(resp.Fields, dal.CatalogField{Name: e.Field, Values: e.Values})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetSchema lists the feature columns of the loaded models and any drift
// against the catalog
func (h *httpServer) GetSchema(w http.ResponseWriter, r *http.Request) {
	schema := h.predictor.Schema()
	resp := dal.SchemaResponse{Columns: schema}

	var drift *encoder.DriftError
	if err := encoder.Validate(h.predictor.Catalog(), schema); errors.As(err, &drift) {
		resp.Drift = drift.Problems()
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetHealth reports that the server is up
func (h *httpServer) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func validateCategory(w http.ResponseWriter, vars url.Values, field string) (string, error) {
	value := vars.Get(field)
	if value == "" {
		err := fmt.Errorf("%w: %s", dal.ErrMissingField, field)
		writeError(w, http.StatusBadRequest, err)
		return "", err
	}
	return value, nil
}

func validateHorsepower(w http.ResponseWriter, vars url.Values) (int, error) {
	return validateBounded(w, vars, dal.FieldHorsepower, dal.HorsepowerMin, dal.HorsepowerMax)
}

func validateCityMPG(w http.ResponseWriter, vars url.Values) (int, error) {
	return validateBounded(w, vars, dal.FieldCityMPG, dal.CityMPGMin, dal.CityMPGMax)
}

func validateBounded(w http.ResponseWriter, vars url.Values, field string, lo, hi int) (int, error) {
	raw := vars.Get(field)
	if raw == "" {
		err := fmt.Errorf("%w: %s", dal.ErrMissingField, field)
		writeError(w, http.StatusBadRequest, err)
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%s must be an integer: %w", field, err))
		return 0, err
	}
	if n < lo || n > hi {
		err := fmt.Errorf("%w: %s must be between %d and %d, got %d", dal.ErrOutOfBounds, field, lo, hi, n)
		writeError(w, http.StatusBadRequest, err)
		return 0, err
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
