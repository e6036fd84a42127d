package soil_defaulter

import (
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	"github.com/LeonardoBeccarini/soilparams/pkg/layers"
)

const auditMeasurement = "soil_crop_layer"

// ProfileToPoints normalizza i crop di un profilo in punti InfluxDB, uno per layer.
func ProfileToPoints(profileID string, p *entities.SoilProfile, ts time.Time) []*write.Point {
	if p == nil || p.Physical == nil {
		return nil
	}
	phys := p.Physical
	depths := layers.Cumulative(phys.Thickness)
	soilType := string(p.Classification())
	if soilType == "" {
		soilType = "unknown"
	}

	var out []*write.Point
	for _, c := range phys.Crops {
		if c == nil {
			continue
		}
		for i := range depths {
			fields := map[string]interface{}{
				"depth_mm": depths[i],
			}
			// Solo valori reali, Influx non accetta NaN
			for key, values := range map[string][]float64{"ll": c.LL, "kl": c.KL, "xf": c.XF} {
				if i < len(values) && !layers.IsMissing(values[i]) {
					fields[key] = values[i]
				}
			}
			tags := map[string]string{
				"profile_id": profileID,
				"soil_type":  soilType,
				"crop":       entities.CanonicalName(c.Name),
				"layer":      strconv.Itoa(i + 1),
				"estimated":  strconv.FormatBool(estimatedAt(c, i)),
			}
			out = append(out, influxdb2.NewPoint(auditMeasurement, tags, fields, ts))
		}
	}
	return out
}

func estimatedAt(c *entities.CropParameters, i int) bool {
	for _, md := range [][]string{c.LLMetadata, c.KLMetadata, c.XFMetadata} {
		if i < len(md) && md[i] == entities.Estimated {
			return true
		}
	}
	return false
}
