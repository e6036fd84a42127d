package defaults

import (
	"math"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	"github.com/LeonardoBeccarini/soilparams/pkg/layers"
)

const wheat = "wheat"

// Constraint names the subsoil measurement used to correct wheat KL.
type Constraint string

const (
	ConstraintNone Constraint = ""
	ConstraintCL   Constraint = "CL"
	ConstraintESP  Constraint = "ESP"
	ConstraintEC   Constraint = "EC"
)

// Baseline wheat KL curve the subsoil correction scales.
var (
	baselineThickness = []float64{100, 100, 200, 200, 200, 200, 200}
	baselineKL        = []float64{0.06, 0.06, 0.06, 0.04, 0.04, 0.02, 0.01}
)

type attenuation func(v float64) float64

func clAttenuation(cl float64) float64   { return math.Min(1, 4*math.Exp(-0.005*cl)) }
func espAttenuation(esp float64) float64 { return math.Min(1, 10*math.Exp(-0.15*esp)) }
func ecAttenuation(ec float64) float64   { return math.Min(1, 3*math.Exp(-1.3*ec)) }

// selectConstraint picks the first of CL, ESP and EC with a real value within the
// first n layers of the sample. The others are ignored even when measured.
func selectConstraint(s *entities.Sample, n int) (Constraint, []float64, attenuation) {
	switch {
	case layers.HasValues(layers.Resize(s.CL, n)):
		return ConstraintCL, s.CL, clAttenuation
	case layers.HasValues(layers.Resize(s.ESP, n)):
		return ConstraintESP, s.ESP, espAttenuation
	case layers.HasValues(layers.Resize(s.EC, n)):
		return ConstraintEC, s.EC, ecAttenuation
	default:
		return ConstraintNone, nil, nil
	}
}

// AdjustWheatKL replaces the KL of a wheat crop with the baseline curve attenuated by
// the subsoil chloride, sodicity or salinity of the sample. Crops other than wheat,
// and samples with none of the three measurements, are left unchanged.
func AdjustWheatKL(c *entities.CropParameters, phys *entities.Physical, s *entities.Sample) Constraint {
	if c == nil || phys == nil || s == nil || !c.IsCrop(wheat) || phys.Layers() == 0 {
		return ConstraintNone
	}
	thickness := s.Thickness
	if len(thickness) == 0 {
		thickness = phys.Thickness
	}
	k, values, factor := selectConstraint(s, len(thickness))
	if k == ConstraintNone {
		return ConstraintNone
	}
	measured := layers.Fill(values, len(thickness), 0)
	onSoil := layers.Remap(measured, thickness, phys.Thickness, measured[len(measured)-1])
	base := layers.Remap(baselineKL, baselineThickness, phys.Thickness, baselineKL[len(baselineKL)-1])

	kl := make([]float64, phys.Layers())
	for i := range kl {
		kl[i] = base[i] * factor(onSoil[i])
	}
	c.KL = kl
	c.KLMetadata = estimatedMetadata(len(kl))
	return k
}
