package soil_defaulter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"
)

// FluxQuerier is the subset of api.QueryAPI used by the audit endpoint.
type FluxQuerier interface {
	Query(ctx context.Context, query string) (*api.QueryTableResult, error)
}

// AuditLayer is one audited crop layer as exposed over HTTP.
type AuditLayer struct {
	ProfileID string  `json:"profile_id"`
	Crop      string  `json:"crop"`
	Layer     int     `json:"layer"`
	Field     string  `json:"field"` // ll | kl | xf | depth_mm
	Value     float64 `json:"value"`
	Estimated bool    `json:"estimated"`
	Time      string  `json:"time"` // RFC3339
}

type auditQueryParams struct {
	Profile   string
	Crop      string
	Minutes   int
	Limit     int
	TimeoutMS int
}

func parseAudit(r *http.Request) auditQueryParams {
	q := r.URL.Query()
	get := func(k string, def, min, max int) int {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				if n < min {
					return min
				}
				if max > 0 && n > max {
					return max
				}
				return n
			}
		}
		return def
	}
	return auditQueryParams{
		Profile:   strings.TrimSpace(q.Get("profile")),
		Crop:      strings.ToLower(strings.TrimSpace(q.Get("crop"))),
		Minutes:   get("minutes", 7*24*60, 1, 90*24*60),
		Limit:     get("limit", 200, 1, 2000),
		TimeoutMS: get("timeout_ms", 2000, 200, 5000),
	}
}

func buildAuditFlux(bucket string, p auditQueryParams) string {
	filter := fmt.Sprintf(`r._measurement == %q and r.profile_id == %q`, auditMeasurement, p.Profile)
	if p.Crop != "" {
		filter += fmt.Sprintf(` and r.crop == %q`, p.Crop)
	}
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => %s)
  |> keep(columns: ["_time","_value","_field","profile_id","crop","layer","estimated"])
  |> sort(columns: ["_time"], desc: true)
  |> limit(n:%d)
`, bucket, p.Minutes, filter, p.Limit)
}

func tagString(v interface{}) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// NewAuditHandler serves GET /profiles/audit?profile=jimbour[&crop=wheat&minutes=1440&limit=200].
func NewAuditHandler(q FluxQuerier, bucket string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := parseAudit(r)
		if p.Profile == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing profile"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(p.TimeoutMS)*time.Millisecond)
		defer cancel()

		res, err := q.Query(ctx, buildAuditFlux(bucket, p))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Error", "influx-query-error")
			_, _ = w.Write([]byte("[]"))
			return
		}
		defer func() { _ = res.Close() }()

		out := make([]AuditLayer, 0, p.Limit)
		for res.Next() {
			rec := res.Record()
			var value float64
			switch v := rec.Value().(type) {
			case float64:
				value = v
			case int64:
				value = float64(v)
			}
			layer, _ := strconv.Atoi(tagString(rec.ValueByKey("layer")))
			out = append(out, AuditLayer{
				ProfileID: tagString(rec.ValueByKey("profile_id")),
				Crop:      tagString(rec.ValueByKey("crop")),
				Layer:     layer,
				Field:     rec.Field(),
				Value:     value,
				Estimated: tagString(rec.ValueByKey("estimated")) == "true",
				Time:      rec.Time().UTC().Format(time.RFC3339),
			})
		}
		if res.Err() != nil {
			w.Header().Set("X-Error", "influx-iter-error")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})
}
