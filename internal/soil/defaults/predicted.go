package defaults

import (
	"math"

	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	"github.com/LeonardoBeccarini/soilparams/internal/soil/tables"
	"github.com/LeonardoBeccarini/soilparams/pkg/layers"
)

// AddPredictedCrops adds the crops implied by the profile's soil type that the
// physical profile does not already parameterize. It returns the names added.
func AddPredictedCrops(p *entities.SoilProfile) []string {
	return addPredictedCrops(p, zap.NewNop())
}

func addPredictedCrops(p *entities.SoilProfile, log *zap.Logger) []string {
	phys := p.Physical
	if phys == nil || phys.Layers() == 0 {
		return nil
	}
	st := p.Classification()
	var added []string
	for _, name := range tables.ApplicableCrops(st) {
		if phys.HasCrop(name) {
			continue
		}
		crop, ok := PredictCrop(st, name, phys)
		if !ok {
			log.Debug("crop cannot be predicted", zap.String("crop", name), zap.String("soil_type", string(st)))
			continue
		}
		if err := phys.AddCrop(crop); err != nil {
			continue
		}
		added = append(added, crop.Name)
	}
	return added
}

// PredictCrop synthesizes LL, KL and XF for a crop from the soil type regression on
// the profile's DUL. ok is false when there is no regression for the soil type and
// crop, no default KL for the crop, or no DUL/LL15 to regress on.
func PredictCrop(st entities.SoilType, name string, phys *entities.Physical) (*entities.CropParameters, bool) {
	coeffs, ok := tables.Regression(st, name)
	if !ok {
		return nil, false
	}
	if !layers.HasValues(phys.DUL) || !layers.HasValues(phys.LL15) {
		return nil, false
	}
	predicted := tables.PredictedThickness()
	kl, ok := tables.KLOnThickness(name, predicted)
	if !ok {
		return nil, false
	}

	n := phys.Layers()
	dulSoil := layers.Fill(phys.DUL, n, 0)
	ll15Soil := layers.Fill(phys.LL15, n, 0)
	dul := layers.Remap(dulSoil, phys.Thickness, predicted, dulSoil[n-1])
	ll15 := layers.Remap(ll15Soil, phys.Thickness, predicted, ll15Soil[n-1])

	ll := make([]float64, len(predicted))
	for i := range predicted {
		dulPct := dul[i] * 100
		v := dulPct * (coeffs.A[i] + coeffs.B*dulPct) / 100
		ll[i] = math.Max(ll15[i], math.Min(v, dul[i]))
	}
	// Shallow layers are wetted often enough that crops reach LL15 there.
	for i := 0; i < predictedTopLayers && i < len(ll); i++ {
		ll[i] = ll15[i]
	}
	xf := layers.Filled(len(predicted), DefaultXF)

	return &entities.CropParameters{
		Name:       name,
		LL:         layers.Remap(ll, predicted, phys.Thickness, ll[len(ll)-1]),
		KL:         layers.Remap(kl, predicted, phys.Thickness, kl[len(kl)-1]),
		XF:         layers.Remap(xf, predicted, phys.Thickness, DefaultXF),
		LLMetadata: estimatedMetadata(n),
		KLMetadata: estimatedMetadata(n),
		XFMetadata: estimatedMetadata(n),
	}, true
}
