package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

func TestCropKLTableShape(t *testing.T) {
	assert.Equal(t, []float64{150, 300, 600, 900, 1200, 1500, 1800}, KLDepths())
	assert.Equal(t, []float64{150, 150, 300, 300, 300, 300, 300}, KLThickness())
	names := CropNames()
	assert.Len(t, names, 19)
	for _, n := range names {
		kl, ok := CropKL(n)
		require.True(t, ok, n)
		assert.Len(t, kl, 7, n)
	}
}

func TestCropKLIgnoresCase(t *testing.T) {
	want := []float64{0.06, 0.06, 0.06, 0.04, 0.04, 0.02, 0.01}
	for _, name := range []string{"Wheat", "wheat", "WHEAT", " Wheat "} {
		kl, ok := CropKL(name)
		require.True(t, ok, name)
		assert.Equal(t, want, kl, name)
	}
}

func TestCropKLUnknownCrop(t *testing.T) {
	kl, ok := CropKL("Spinach")
	assert.False(t, ok)
	assert.Nil(t, kl)
}

func TestCropKLReturnsCopy(t *testing.T) {
	kl, _ := CropKL("Wheat")
	kl[0] = 99
	again, _ := CropKL("Wheat")
	assert.Equal(t, 0.06, again[0])
}

func TestKLOnMatchingThicknessIsTheTableRow(t *testing.T) {
	kl, ok := KLOnThickness("Wheat", []float64{150, 150, 300, 300, 300, 300, 300})
	require.True(t, ok)
	assert.Equal(t, []float64{0.06, 0.06, 0.06, 0.04, 0.04, 0.02, 0.01}, kl)
}

func TestKLOnDeeperThicknessKeepsLastValue(t *testing.T) {
	kl, ok := KLOnThickness("Wheat", []float64{1800, 200})
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0.01, 0.01}, kl, 1e-12)
}

func TestRegression(t *testing.T) {
	c, ok := Regression(entities.SoilTypeBlackVertosol, "wheat")
	require.True(t, ok)
	assert.Len(t, c.A, len(PredictedThickness()))

	_, ok = Regression(entities.SoilTypeBlackVertosol, "Chickpea")
	assert.False(t, ok)
	_, ok = Regression(entities.SoilTypeUnknown, "Wheat")
	assert.False(t, ok)
}

func TestApplicableCrops(t *testing.T) {
	assert.Equal(t, []string{"Cotton", "Sorghum", "Wheat"}, ApplicableCrops(entities.SoilTypeBlackVertosol))
	assert.Contains(t, ApplicableCrops(entities.SoilTypeGreyVertosol), "Chickpea")
	assert.Empty(t, ApplicableCrops(entities.SoilTypeUnknown))
}

func TestEveryPredictedCropHasKL(t *testing.T) {
	for _, st := range []entities.SoilType{entities.SoilTypeBlackVertosol, entities.SoilTypeGreyVertosol} {
		for _, crop := range ApplicableCrops(st) {
			_, ok := CropKL(crop)
			assert.True(t, ok, "%s/%s", st, crop)
		}
	}
}

func TestDecodeRejectsMalformedTables(t *testing.T) {
	_, err := decodeKL([]byte("depths: [150, 300]\ncrops:\n  - name: Wheat\n    kl: [0.1]\n"))
	assert.Error(t, err)

	_, err = decodeRegression([]byte("thickness: [150]\nsoils:\n  - soil_type: Red Sodosol\n    crops: []\n"))
	assert.Error(t, err)
}
