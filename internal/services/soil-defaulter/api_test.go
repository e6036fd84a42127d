package soil_defaulter

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	msg "github.com/LeonardoBeccarini/soilparams/internal/model/messages"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := NewService(nil, &fakePublisher{}, zap.NewNop(), WithMetrics(NewMetrics(reg)))
	return NewHTTPMux(svc, NewHealthHandler(fakeConn(true), nil), NewReadyHandler(fakeConn(false)), reg)
}

func post(mux http.Handler, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/profiles/defaults", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestDefaultsJSON(t *testing.T) {
	rec := post(newTestMux(t), "application/json", jimbourJSON)
	require.Equal(t, http.StatusOK, rec.Code)

	var evt msg.SoilProfileDefaultedEvent
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&evt))
	assert.Equal(t, "jimbour", evt.ProfileID)
	require.NotNil(t, evt.Profile.Physical)
	assert.Len(t, evt.Profile.Physical.Crops, 3)
}

func TestDefaultsYAML(t *testing.T) {
	rec := post(newTestMux(t), "application/yaml", jimbourYAML)
	require.Equal(t, http.StatusOK, rec.Code)

	var evt msg.SoilProfileDefaultedEvent
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&evt))
	assert.ElementsMatch(t,
		[]string{"Cotton", "Sorghum", "Wheat", "Barley", "Chickpea", "Fababean"},
		evt.AddedCrops)
}

func TestDefaultsStatusCodes(t *testing.T) {
	mux := newTestMux(t)

	assert.Equal(t, http.StatusUnprocessableEntity, post(mux, "application/json", namelessCropJSON).Code)
	assert.Equal(t, http.StatusBadRequest, post(mux, "application/json", "{").Code)

	req := httptest.NewRequest(http.MethodGet, "/profiles/defaults", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	mux := newTestMux(t)
	require.Equal(t, http.StatusOK, post(mux, "application/json", jimbourJSON).Code)
	require.Equal(t, http.StatusUnprocessableEntity, post(mux, "application/json", namelessCropJSON).Code)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `soil_profiles_defaulted_total{result="defaulted"} 1`)
	assert.Contains(t, out, `soil_profiles_defaulted_total{result="rejected"} 1`)
	assert.Contains(t, out, `soil_predicted_crops_total{crop="Cotton"} 1`)
	assert.Contains(t, out, "soil_defaulting_duration_seconds_count 2")
}
