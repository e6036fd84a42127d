package tables

import (
	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

// Coefficients of the lower limit regression LL = DUL% * (A[i] + B*DUL%) / 100,
// one A per predicted layer.
type Coefficients struct {
	A []float64
	B float64
}

type soilRegressions struct {
	crops  []string
	coeffs map[string]Coefficients
}

type regressionTable struct {
	thickness []float64
	soils     map[entities.SoilType]*soilRegressions
}

// PredictedThickness is the fixed layer scheme (mm) the regressions are defined on.
func PredictedThickness() []float64 {
	return clone(regTable.thickness)
}

// ApplicableCrops lists the crops that can be predicted for a soil type.
func ApplicableCrops(st entities.SoilType) []string {
	sr, ok := regTable.soils[st]
	if !ok {
		return nil
	}
	return append([]string(nil), sr.crops...)
}

// Regression returns the coefficients for a soil type and crop name.
func Regression(st entities.SoilType, crop string) (Coefficients, bool) {
	sr, ok := regTable.soils[st]
	if !ok {
		return Coefficients{}, false
	}
	c, ok := sr.coeffs[entities.CanonicalName(crop)]
	if !ok {
		return Coefficients{}, false
	}
	return Coefficients{A: clone(c.A), B: c.B}, true
}
