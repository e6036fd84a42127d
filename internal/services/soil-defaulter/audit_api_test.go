package soil_defaulter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/stretchr/testify/assert"
)

type failingQuerier struct{ query string }

func (f *failingQuerier) Query(_ context.Context, query string) (*api.QueryTableResult, error) {
	f.query = query
	return nil, errors.New("influx unreachable")
}

func TestParseAudit(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/profiles/audit?profile=jimbour&crop=Wheat&limit=99999&minutes=0", nil)
	p := parseAudit(r)
	assert.Equal(t, "jimbour", p.Profile)
	assert.Equal(t, "wheat", p.Crop)
	assert.Equal(t, 2000, p.Limit)
	assert.Equal(t, 1, p.Minutes)
	assert.Equal(t, 2000, p.TimeoutMS)
}

func TestBuildAuditFlux(t *testing.T) {
	flux := buildAuditFlux("soil", auditQueryParams{Profile: "jimbour", Crop: "wheat", Minutes: 60, Limit: 10})
	assert.Contains(t, flux, `from(bucket: "soil")`)
	assert.Contains(t, flux, `r._measurement == "soil_crop_layer" and r.profile_id == "jimbour" and r.crop == "wheat"`)
	assert.Contains(t, flux, "range(start: -60m)")
	assert.Contains(t, flux, "limit(n:10)")

	flux = buildAuditFlux("soil", auditQueryParams{Profile: "jimbour", Minutes: 60, Limit: 10})
	assert.NotContains(t, flux, "r.crop")
}

func TestAuditHandler(t *testing.T) {
	q := &failingQuerier{}
	h := NewAuditHandler(q, "soil")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profiles/audit", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profiles/audit?profile=jimbour", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "influx-query-error", rec.Header().Get("X-Error"))
	assert.JSONEq(t, "[]", rec.Body.String())
	assert.Contains(t, q.query, `r.profile_id == "jimbour"`)
}
