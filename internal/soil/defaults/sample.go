package defaults

import (
	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	"github.com/LeonardoBeccarini/soilparams/pkg/layers"
)

// defaultSample completes the measured arrays of a sample and drops the ones that
// were never measured.
func defaultSample(s *entities.Sample, phys *entities.Physical, log *zap.Logger) {
	if len(s.Thickness) == 0 && phys != nil {
		s.Thickness = append([]float64(nil), phys.Thickness...)
	}
	n := len(s.Thickness)
	if n == 0 {
		log.Debug("sample has no thickness, arrays dropped", zap.String("sample", s.Name))
	}

	if layers.HasValues(s.SW) {
		s.SW = layers.FillFrom(s.SW, n, ll15OnSample(s, phys), 0)
	} else {
		s.SW = nil
	}
	s.NO3 = fillMeasured(s.NO3, n, DefaultNO3N)
	s.NH4 = fillMeasured(s.NH4, n, DefaultNH4N)
	s.CL = fillMeasured(s.CL, n, DefaultCL)
	s.EC = fillMeasured(s.EC, n, DefaultEC)
	s.ESP = fillMeasured(s.ESP, n, DefaultESP)
	s.PH = fillMeasured(s.PH, n, DefaultPH)
	s.OC = fillMeasured(s.OC, n, DefaultOC)
}

// ll15OnSample is the profile's LL15 on the sample thickness scheme, or nil when the
// profile has no LL15.
func ll15OnSample(s *entities.Sample, phys *entities.Physical) []float64 {
	if phys == nil || !layers.HasValues(phys.LL15) || phys.Layers() == 0 {
		return nil
	}
	ll15 := layers.Fill(phys.LL15, phys.Layers(), 0)
	return layers.Remap(ll15, phys.Thickness, s.Thickness, ll15[len(ll15)-1])
}
