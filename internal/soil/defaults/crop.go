package defaults

import (
	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	"github.com/LeonardoBeccarini/soilparams/internal/soil/tables"
	"github.com/LeonardoBeccarini/soilparams/pkg/layers"
)

// defaultCrop completes the LL, KL and XF arrays of a crop on the physical thickness
// scheme and returns the number of substituted layer values.
func defaultCrop(c *entities.CropParameters, phys *entities.Physical, log *zap.Logger) int {
	n := phys.Layers()
	estimated := 0

	if !layers.HasValues(c.KL) {
		if kl, ok := tables.KLOnThickness(c.Name, phys.Thickness); ok {
			c.KL = kl
			c.KLMetadata = estimatedMetadata(n)
			estimated += n
		} else {
			log.Debug("no default KL for crop", zap.String("crop", c.Name))
		}
	}

	var k int
	c.LL, c.LLMetadata, k = fillLayers(c.LL, c.LLMetadata, n, phys.LL15, 0)
	estimated += k
	c.KL, c.KLMetadata, k = fillLayers(c.KL, c.KLMetadata, n, layers.Filled(n, DefaultKL), DefaultKL)
	estimated += k
	c.XF, c.XFMetadata, k = fillLayers(c.XF, c.XFMetadata, n, layers.Filled(n, DefaultXF), DefaultXF)
	estimated += k
	return estimated
}

// fillLayers resizes values and meta to n, replaces each missing value with the
// fallback for its layer and tags it Estimated.
func fillLayers(values []float64, meta []string, n int, fallback []float64, def float64) ([]float64, []string, int) {
	out := layers.Resize(values, n)
	md := resizeMetadata(meta, n)
	count := 0
	for i, v := range out {
		if layers.IsMissing(v) {
			md[i] = entities.Estimated
			count++
		}
	}
	return layers.FillFrom(out, n, fallback, def), md, count
}

func resizeMetadata(meta []string, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	copy(out, meta)
	return out
}

func estimatedMetadata(n int) []string {
	md := make([]string, n)
	for i := range md {
		md[i] = entities.Estimated
	}
	return md
}
