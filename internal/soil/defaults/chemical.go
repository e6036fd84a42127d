package defaults

import (
	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	"github.com/LeonardoBeccarini/soilparams/pkg/layers"
)

func defaultChemical(c *entities.ChemicalAnalysis, phys *entities.Physical, log *zap.Logger) {
	if len(c.Thickness) == 0 && phys != nil {
		c.Thickness = append([]float64(nil), phys.Thickness...)
	}
	n := len(c.Thickness)
	if n == 0 {
		log.Debug("chemical analysis has no thickness, arrays dropped")
	}
	c.CL = layers.Fill(c.CL, n, DefaultCL)
	c.EC = layers.Fill(c.EC, n, DefaultEC)
	c.ESP = layers.Fill(c.ESP, n, DefaultESP)
	c.PH = layers.Fill(c.PH, n, DefaultPH)
	c.NO3N = layers.Fill(c.NO3N, n, DefaultNO3N)
	c.NH4N = layers.Fill(c.NH4N, n, DefaultNH4N)
}
