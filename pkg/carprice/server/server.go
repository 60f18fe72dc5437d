package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/catalog"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/display"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/encoder"
)

// Predictor is what the server needs from the prediction service.
type Predictor interface {
	Predict(v dal.Vehicle) (dal.Prediction, error)
	Catalog() *catalog.Catalog
	Schema() encoder.Schema
}

// NewHTTPServer returns a new HTTP server
func NewHTTPServer(addr string, predictor Predictor, formatter display.Formatter, logger *slog.Logger) *http.Server {
	server := newHTTPServer(predictor, formatter, logger)
	return &http.Server{
		Addr:              addr,
		Handler:           server.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type httpServer struct {
	log       *slog.Logger
	predictor Predictor
	formatter display.Formatter
}

func newHTTPServer(predictor Predictor, formatter display.Formatter, logger *slog.Logger) *httpServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &httpServer{
		log:       logger,
		predictor: predictor,
		formatter: formatter,
	}
}

func (h *httpServer) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, h.accessLog)
	r.HandleFunc("/predict", h.GetPrediction).Methods(http.MethodGet)
	r.HandleFunc("/predict", h.PostPrediction).Methods(http.MethodPost)
	r.HandleFunc("/catalog", h.GetCatalog).Methods(http.MethodGet)
	r.HandleFunc("/schema", h.GetSchema).Methods(http.MethodGet)
	r.HandleFunc("/health", h.GetHealth).Methods(http.MethodGet)
	return r
}
