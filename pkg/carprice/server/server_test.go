package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/catalog"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/display"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/encoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePredictor struct {
	prediction dal.Prediction
	err        error
	schema     encoder.Schema
	got        []dal.Vehicle
}

func (f *fakePredictor) Predict(v dal.Vehicle) (dal.Prediction, error) {
	f.got = append(f.got, v)
	return f.prediction, f.err
}

func (f *fakePredictor) Catalog() *catalog.Catalog { return catalog.Default() }

func (f *fakePredictor) Schema() encoder.Schema { return f.schema }

func newTestServer(t *testing.T, p *fakePredictor) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := newHTTPServer(p, display.Formatter{Currency: "$", Language: display.French}, logger)
	ts := httptest.NewServer(server.router())
	t.Cleanup(ts.Close)
	return ts
}

func TestServer(t *testing.T) {
	toyota := dal.Vehicle{Make: "toyota", FuelType: "essence", NumDoors: "four", BodyStyle: "sedan", Horsepower: 120, CityMPG: 30}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantResp   *dal.PredictionResponse
		wantError  string
	}{
		{
			name:       "GetExampleRecord",
			method:     http.MethodGet,
			path:       "/predict?make=toyota&fuel_type=essence&num_doors=four&body_style=sedan&horsepower=120&city_mpg=30",
			wantStatus: http.StatusOK,
			wantResp: &dal.PredictionResponse{
				Vehicle:      toyota,
				Price:        15000,
				PriceDisplay: "$15000.00",
				Category:     "expensive",
				Label:        "Chère",
			},
		},
		{
			name:       "PostExampleRecord",
			method:     http.MethodPost,
			path:       "/predict",
			body:       `{"make":"toyota","fuel_type":"essence","num_doors":"four","body_style":"sedan","horsepower":120,"city_mpg":30}`,
			wantStatus: http.StatusOK,
			wantResp: &dal.PredictionResponse{
				Vehicle:      toyota,
				Price:        15000,
				PriceDisplay: "$15000.00",
				Category:     "expensive",
				Label:        "Chère",
			},
		},
		{
			name:       "GetMissingMake",
			method:     http.MethodGet,
			path:       "/predict?fuel_type=essence&num_doors=four&body_style=sedan&horsepower=120&city_mpg=30",
			wantStatus: http.StatusBadRequest,
			wantError:  "missing field: make",
		},
		{
			name:       "GetHorsepowerNotInteger",
			method:     http.MethodGet,
			path:       "/predict?make=toyota&fuel_type=essence&num_doors=four&body_style=sedan&horsepower=fast&city_mpg=30",
			wantStatus: http.StatusBadRequest,
			wantError:  "horsepower must be an integer",
		},
		{
			name:       "GetHorsepowerOutOfBounds",
			method:     http.MethodGet,
			path:       "/predict?make=toyota&fuel_type=essence&num_doors=four&body_style=sedan&horsepower=900&city_mpg=30",
			wantStatus: http.StatusBadRequest,
			wantError:  "value out of bounds",
		},
		{
			name:       "GetCityMPGOutOfBounds",
			method:     http.MethodGet,
			path:       "/predict?make=toyota&fuel_type=essence&num_doors=four&body_style=sedan&horsepower=120&city_mpg=5",
			wantStatus: http.StatusBadRequest,
			wantError:  "city_mpg must be between 10 and 50",
		},
		{
			name:       "PostMalformedBody",
			method:     http.MethodPost,
			path:       "/predict",
			body:       `{"make":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "PostUnknownField",
			method:     http.MethodPost,
			path:       "/predict",
			body:       `{"make":"toyota","colour":"red"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "PostOutOfBounds",
			method:     http.MethodPost,
			path:       "/predict",
			body:       `{"make":"toyota","fuel_type":"essence","num_doors":"four","body_style":"sedan","horsepower":10,"city_mpg":30}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "value out of bounds",
		},
		{
			name:       "PostUnknownMakeIsAccepted",
			method:     http.MethodPost,
			path:       "/predict",
			body:       `{"make":"lada","fuel_type":"essence","num_doors":"four","body_style":"sedan","horsepower":120,"city_mpg":30}`,
			wantStatus: http.StatusOK,
		},
	}

	ts := newTestServer(t, &fakePredictor{prediction: dal.Prediction{Price: 15000, Category: dal.Expensive}})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			respBody, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode, string(respBody))
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

			if tc.wantResp != nil {
				var got dal.PredictionResponse
				require.NoError(t, json.Unmarshal(respBody, &got))
				assert.Equal(t, *tc.wantResp, got)
			}
			if tc.wantError != "" {
				var got map[string]string
				require.NoError(t, json.Unmarshal(respBody, &got))
				assert.Contains(t, got["error"], tc.wantError)
			}
		})
	}
}

func TestServerPredictionFailure(t *testing.T) {
	ts := newTestServer(t, &fakePredictor{err: errors.New("feature shape mismatch")})

	resp, err := http.Get(ts.URL + "/predict?make=bmw&fuel_type=diesel&num_doors=two&body_style=wagon&horsepower=300&city_mpg=20")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServerRequestIDPropagates(t *testing.T) {
	ts := newTestServer(t, &fakePredictor{})

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestServerCatalog(t *testing.T) {
	ts := newTestServer(t, &fakePredictor{})

	resp, err := http.Get(ts.URL + "/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got dal.CatalogResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Fields, 4)
	assert.Equal(t, dal.CatalogField{Name: "make", Values: []string{"audi", "bmw", "toyota", "honda", "mercedes"}}, got.Fields[0])
}

func TestServerSchema(t *testing.T) {
	ts := newTestServer(t, &fakePredictor{schema: encoder.Schema{"horsepower", "city_mpg", "make_audi", "engine_size"}})

	resp, err := http.Get(ts.URL + "/schema")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got dal.SchemaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []string{"horsepower", "city_mpg", "make_audi", "engine_size"}, got.Columns)
	assert.Contains(t, got.Drift, "missing:make_bmw")
	assert.Contains(t, got.Drift, "unknown:engine_size")
}

func TestServerMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, &fakePredictor{})

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/predict", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
