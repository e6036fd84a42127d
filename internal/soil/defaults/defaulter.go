// Package defaults fills in the missing values of a soil profile so that every
// per-layer array of the profile is complete before it is handed to a simulation.
//
// A pass runs, in order: predicted crops for vertosols, chemical analysis fallbacks,
// per crop KL lookup and layer fixups (with the subsoil constraint correction for
// wheat), sample fallbacks and a final KS fixup. A pass is idempotent.
package defaults

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	"github.com/LeonardoBeccarini/soilparams/pkg/layers"
)

// Report summarises what a defaulting pass changed.
type Report struct {
	AddedCrops      []string   // crops synthesized from the vertosol regressions
	WheatConstraint Constraint // subsoil constraint applied to wheat KL, if any
	Estimated       int        // layer values substituted in the supplied crops
}

// Defaulter runs defaulting passes over soil profiles. It holds no per-profile state
// and can be shared between goroutines working on different profiles.
type Defaulter struct {
	logger *zap.Logger
}

// Option configures a Defaulter.
type Option func(*Defaulter)

// WithLogger sets the logger used for debug output about skipped estimations.
func WithLogger(l *zap.Logger) Option {
	return func(d *Defaulter) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDefaulter builds a Defaulter.
func NewDefaulter(opts ...Option) *Defaulter {
	d := &Defaulter{logger: zap.NewNop()}
	for _, o := range opts {
		o(d)
	}
	return d
}

var std = NewDefaulter()

// FillInMissingValues fills in the missing values of p in place using a default
// Defaulter.
func FillInMissingValues(p *entities.SoilProfile) error {
	return std.FillInMissingValues(p)
}

// FillInMissingValues fills in the missing values of p in place.
func (d *Defaulter) FillInMissingValues(p *entities.SoilProfile) error {
	_, err := d.Run(p)
	return err
}

// Run fills in the missing values of p in place and reports what was changed.
// It fails only when the profile cannot be matched against the tables at all; the
// profile is left untouched in that case.
func (d *Defaulter) Run(p *entities.SoilProfile) (Report, error) {
	var rep Report
	if p == nil {
		return rep, fmt.Errorf("%w: nil soil profile", ErrConfiguration)
	}
	if err := validate(p); err != nil {
		return rep, err
	}
	log := d.logger.With(zap.String("soil", p.Name))

	if phys := p.Physical; phys != nil {
		phys.LL15 = fillMeasured(phys.LL15, phys.Layers(), 0)
		phys.DUL = fillMeasured(phys.DUL, phys.Layers(), 0)
	}

	rep.AddedCrops = addPredictedCrops(p, log)

	if p.Chemical != nil {
		defaultChemical(p.Chemical, p.Physical, log)
	}

	if phys := p.Physical; phys != nil {
		initial := p.InitialSample()
		for _, c := range phys.Crops {
			rep.Estimated += defaultCrop(c, phys, log)
			if !c.IsCrop(wheat) {
				continue
			}
			if k := AdjustWheatKL(c, phys, initial); k != ConstraintNone {
				rep.WheatConstraint = k
				log.Debug("wheat KL constrained by subsoil", zap.String("constraint", string(k)))
			}
		}
	}

	for _, s := range p.Samples {
		if s != nil {
			defaultSample(s, p.Physical, log)
		}
	}

	if phys := p.Physical; phys != nil && len(phys.KS) > 0 {
		phys.KS = fillMeasured(phys.KS, phys.Layers(), 0)
	}
	return rep, nil
}

func validate(p *entities.SoilProfile) error {
	if p.Physical == nil {
		return nil
	}
	for i, c := range p.Physical.Crops {
		if c == nil || strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: crop %d of soil %q has no name", ErrConfiguration, i, p.Name)
		}
	}
	return nil
}

// fillMeasured fills an array that has at least one real value and drops one that
// has none, which is treated as not measured.
func fillMeasured(values []float64, n int, def float64) []float64 {
	if !layers.HasValues(values) {
		return nil
	}
	return layers.Fill(values, n, def)
}
