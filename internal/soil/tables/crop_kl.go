package tables

import (
	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	"github.com/LeonardoBeccarini/soilparams/pkg/layers"
)

type cropKLRow struct {
	name string
	kl   []float64
}

type cropKLTable struct {
	depths []float64
	rows   map[string]cropKLRow
	order  []string
}

// KLDepths returns the cumulative reference depths (mm) of the crop KL table.
func KLDepths() []float64 {
	return clone(klTable.depths)
}

// KLThickness returns the reference depths of the crop KL table as a thickness scheme.
func KLThickness() []float64 {
	out := make([]float64, len(klTable.depths))
	prev := 0.0
	for i, d := range klTable.depths {
		out[i] = d - prev
		prev = d
	}
	return out
}

// CropKL returns the default KL curve of a crop at the reference depths. The name is
// matched ignoring case; ok is false when the crop is not in the table.
func CropKL(name string) (kl []float64, ok bool) {
	row, ok := klTable.rows[entities.CanonicalName(name)]
	if !ok {
		return nil, false
	}
	return clone(row.kl), true
}

// KLOnThickness returns the crop's default KL curve remapped onto thickness.
func KLOnThickness(name string, thickness []float64) ([]float64, bool) {
	kl, ok := CropKL(name)
	if !ok {
		return nil, false
	}
	return layers.Remap(kl, KLThickness(), thickness, kl[len(kl)-1]), true
}

// CropNames lists the crops of the KL table in table order.
func CropNames() []string {
	out := make([]string, 0, len(klTable.order))
	for _, key := range klTable.order {
		out = append(out, klTable.rows[key].name)
	}
	return out
}
