package defaults

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

func subsoilPhysical() *entities.Physical {
	return &entities.Physical{Thickness: append([]float64(nil), baselineThickness...)}
}

func wheatCrop() *entities.CropParameters {
	return &entities.CropParameters{Name: "Wheat", KL: []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}}
}

func TestAdjustWheatKLUsesESPWhenCLMissing(t *testing.T) {
	esp := []float64{2, 5, 10, 15, 20, 25, 30}
	s := &entities.Sample{
		Thickness: append([]float64(nil), baselineThickness...),
		CL:        []float64{nan, nan, nan, nan, nan, nan, nan},
		ESP:       esp,
		EC:        []float64{0.5, 0.8, 1.2, 1.6, 2.0, 2.4, 2.8},
	}
	c := wheatCrop()

	k := AdjustWheatKL(c, subsoilPhysical(), s)
	require.Equal(t, ConstraintESP, k)
	for i := range c.KL {
		want := baselineKL[i] * math.Min(1, 10*math.Exp(-0.15*esp[i]))
		assert.InDelta(t, want, c.KL[i], 1e-12, "layer %d", i)
	}
	assert.Equal(t, entities.Estimated, c.KLMetadata[0])
}

func TestAdjustWheatKLPrefersCL(t *testing.T) {
	cl := []float64{100, 200, 400, 600, 800, 1000, 1200}
	s := &entities.Sample{
		Thickness: append([]float64(nil), baselineThickness...),
		CL:        cl,
		ESP:       []float64{20, 20, 20, 20, 20, 20, 20},
	}
	c := wheatCrop()

	require.Equal(t, ConstraintCL, AdjustWheatKL(c, subsoilPhysical(), s))
	for i := range c.KL {
		want := baselineKL[i] * math.Min(1, 4*math.Exp(-0.005*cl[i]))
		assert.InDelta(t, want, c.KL[i], 1e-12, "layer %d", i)
	}
}

func TestAdjustWheatKLFallsBackToEC(t *testing.T) {
	ec := []float64{0.2, 0.4, 0.8, 1.2, nan, nan, nan}
	s := &entities.Sample{Thickness: append([]float64(nil), baselineThickness...), EC: ec}
	c := wheatCrop()

	require.Equal(t, ConstraintEC, AdjustWheatKL(c, subsoilPhysical(), s))
	// Missing deep EC repeats the last measured value.
	want := baselineKL[6] * math.Min(1, 3*math.Exp(-1.3*1.2))
	assert.InDelta(t, want, c.KL[6], 1e-12)
	assert.Equal(t, baselineKL[0], c.KL[0])
}

func TestAdjustWheatKLWithoutMeasurements(t *testing.T) {
	s := &entities.Sample{Thickness: []float64{100}, PH: []float64{8}}
	c := wheatCrop()

	assert.Equal(t, ConstraintNone, AdjustWheatKL(c, subsoilPhysical(), s))
	assert.Equal(t, []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}, c.KL)
}

func TestAdjustWheatKLOnlyForWheat(t *testing.T) {
	s := &entities.Sample{Thickness: []float64{100}, CL: []float64{500}}
	c := &entities.CropParameters{Name: "Barley", KL: []float64{0.1}}

	assert.Equal(t, ConstraintNone, AdjustWheatKL(c, subsoilPhysical(), s))
	assert.Equal(t, []float64{0.1}, c.KL)
	assert.Equal(t, ConstraintNone, AdjustWheatKL(wheatCrop(), subsoilPhysical(), nil))
}

func TestAdjustWheatKLRemapsSampleOntoSoil(t *testing.T) {
	phys := &entities.Physical{Thickness: []float64{200, 200}}
	s := &entities.Sample{Thickness: []float64{100, 100, 100, 100}, ESP: []float64{0, 10, 20, 30}}
	c := wheatCrop()

	require.Equal(t, ConstraintESP, AdjustWheatKL(c, phys, s))
	require.Len(t, c.KL, 2)
	// Soil layer bottoms at 200 and 400 mm read ESP 10 and 30; baseline KL at those
	// depths is 0.06 and 0.06.
	assert.InDelta(t, 0.06*math.Min(1, 10*math.Exp(-1.5)), c.KL[0], 1e-12)
	assert.InDelta(t, 0.06*math.Min(1, 10*math.Exp(-4.5)), c.KL[1], 1e-12)
}

func TestAdjustWheatKLIgnoresValuesBelowSample(t *testing.T) {
	s := &entities.Sample{Thickness: []float64{100}, CL: []float64{nan, 500}, ESP: []float64{10}}
	c := wheatCrop()

	require.Equal(t, ConstraintESP, AdjustWheatKL(c, subsoilPhysical(), s))
	assert.InDelta(t, baselineKL[0]*espAttenuation(10), c.KL[0], 1e-12)

	s = &entities.Sample{Thickness: []float64{100}, CL: []float64{nan, 500}}
	c = wheatCrop()
	assert.Equal(t, ConstraintNone, AdjustWheatKL(c, subsoilPhysical(), s))
	assert.Equal(t, []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}, c.KL)
}
