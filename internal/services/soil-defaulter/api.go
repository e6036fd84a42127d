package soil_defaulter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	msg "github.com/LeonardoBeccarini/soilparams/internal/model/messages"
	"github.com/LeonardoBeccarini/soilparams/internal/soil/defaults"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NewHTTPMux exposes the defaulting API plus health and metrics endpoints.
func NewHTTPMux(svc *Service, healthz, readyz http.Handler, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	if healthz != nil {
		mux.Handle("/healthz", healthz)
	}
	if readyz != nil {
		mux.Handle("/readyz", readyz)
	}
	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// POST /profiles/defaults
	// Body: profilo JSON o YAML (Content-Type: application/yaml)
	mux.HandleFunc("/profiles/defaults", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
			return
		}
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		doc, err := msg.DecodeProfile(body, msg.FormatFor(r.Header.Get("Content-Type")))
		if err != nil {
			svc.metrics.incProfile(resultMalformed)
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}

		res, err := svc.Default(r.Context(), msg.ProfileSlug(doc.Name), doc)
		switch {
		case errors.Is(err, defaults.ErrConfiguration):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
			return
		case err != nil:
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, res.Event(svc.now().UTC()))
	})

	return mux
}
