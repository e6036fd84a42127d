package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

func TestAddPredictedCropsBlackVertosol(t *testing.T) {
	p := blackVertosol()
	added := AddPredictedCrops(p)
	assert.Equal(t, []string{"Cotton", "Sorghum", "Wheat"}, added)

	w := p.Physical.Crop("wheat")
	require.NotNil(t, w)
	for i := 0; i < 3; i++ {
		assert.Equal(t, p.Physical.LL15[i], w.LL[i], "layer %d", i)
	}
	for i := 3; i < len(w.LL); i++ {
		assert.GreaterOrEqual(t, w.LL[i], p.Physical.LL15[i], "layer %d", i)
		assert.LessOrEqual(t, w.LL[i], p.Physical.DUL[i], "layer %d", i)
	}
	assert.Equal(t, []float64{0.06, 0.06, 0.06, 0.04, 0.04, 0.02, 0.01}, w.KL)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1, 1}, w.XF)
	for _, md := range [][]string{w.LLMetadata, w.KLMetadata, w.XFMetadata} {
		assert.Len(t, md, 7)
		for _, m := range md {
			assert.Equal(t, entities.Estimated, m)
		}
	}
}

func TestPredictedLLFollowsRegression(t *testing.T) {
	p := blackVertosol()
	crop, ok := PredictCrop(entities.SoilTypeBlackVertosol, "Cotton", p.Physical)
	require.True(t, ok)

	// Layer 4: DUL 0.45, A 1.043, B -0.0070.
	want := 45 * (1.043 - 0.0070*45) / 100
	assert.InDelta(t, want, crop.LL[4], 1e-9)
}

func TestPredictedLLIsBounded(t *testing.T) {
	p := blackVertosol()
	// Cotton, layer 5: 32 * (1.095 - 0.007*32) / 100 falls below LL15.
	p.Physical.DUL[5] = 0.32
	// Cotton, layer 6: 20 * (1.151 - 0.007*20) / 100 exceeds DUL.
	p.Physical.LL15[6] = 0.15
	p.Physical.DUL[6] = 0.20

	crop, ok := PredictCrop(entities.SoilTypeBlackVertosol, "Cotton", p.Physical)
	require.True(t, ok)
	assert.Equal(t, 0.30, crop.LL[5])
	assert.Equal(t, 0.20, crop.LL[6])
}

func TestAddPredictedCropsSkipsExistingNames(t *testing.T) {
	p := blackVertosol()
	p.Physical.Crops = []*entities.CropParameters{{Name: "WHEAT", LL: []float64{0.3, 0.3, 0.3, 0.3, 0.3, 0.3, 0.3}}}

	added := AddPredictedCrops(p)
	assert.Equal(t, []string{"Cotton", "Sorghum"}, added)

	count := 0
	for _, c := range p.Physical.Crops {
		if c.IsCrop("wheat") {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 0.3, p.Physical.Crop("wheat").LL[0])
}

func TestAddPredictedCropsIgnoresOtherSoils(t *testing.T) {
	p := blackVertosol()
	p.SoilType = "Brown Chromosol"
	assert.Empty(t, AddPredictedCrops(p))
	assert.Empty(t, p.Physical.Crops)
}

func TestAddPredictedCropsNeedsDUL(t *testing.T) {
	p := blackVertosol()
	p.Physical.DUL = []float64{nan, nan, nan, nan, nan, nan, nan}
	assert.Empty(t, AddPredictedCrops(p))
}

func TestAddPredictedCropsWithoutPhysical(t *testing.T) {
	p := &entities.SoilProfile{SoilType: "Grey Vertosol"}
	assert.Empty(t, AddPredictedCrops(p))
}

func TestPredictCropRemapsOntoSoilThickness(t *testing.T) {
	p := blackVertosol()
	p.Physical.Thickness = []float64{100, 200, 300, 400, 500}
	p.Physical.LL15 = []float64{0.22, 0.24, 0.27, 0.29, 0.31}
	p.Physical.DUL = []float64{0.48, 0.47, 0.46, 0.45, 0.43}

	crop, ok := PredictCrop(entities.SoilTypeGreyVertosol, "Chickpea", p.Physical)
	require.True(t, ok)
	assert.Len(t, crop.LL, 5)
	assert.Len(t, crop.KL, 5)
	assert.Len(t, crop.XF, 5)
	assert.Len(t, crop.LLMetadata, 5)
}
