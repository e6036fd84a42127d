package messages

import (
	"math"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

// Layer values travel as nullable numbers: null is a missing layer value.
type Layers []*float64

// SoilProfilePayload is the wire form of a soil profile.
type SoilProfilePayload struct {
	Name     string                   `json:"name" yaml:"name"`
	SoilType string                   `json:"soil_type" yaml:"soil_type"`
	Physical *PhysicalPayload         `json:"physical,omitempty" yaml:"physical,omitempty"`
	Chemical *ChemicalAnalysisPayload `json:"chemical,omitempty" yaml:"chemical,omitempty"`
	Samples  []SamplePayload          `json:"samples,omitempty" yaml:"samples,omitempty"`
}

type PhysicalPayload struct {
	Thickness []float64     `json:"thickness" yaml:"thickness"`
	LL15      Layers        `json:"ll15" yaml:"ll15"`
	DUL       Layers        `json:"dul" yaml:"dul"`
	KS        Layers        `json:"ks,omitempty" yaml:"ks,omitempty"`
	Crops     []CropPayload `json:"crops,omitempty" yaml:"crops,omitempty"`
}

type CropPayload struct {
	Name       string   `json:"name" yaml:"name"`
	LL         Layers   `json:"ll,omitempty" yaml:"ll,omitempty"`
	KL         Layers   `json:"kl,omitempty" yaml:"kl,omitempty"`
	XF         Layers   `json:"xf,omitempty" yaml:"xf,omitempty"`
	LLMetadata []string `json:"ll_metadata,omitempty" yaml:"ll_metadata,omitempty"`
	KLMetadata []string `json:"kl_metadata,omitempty" yaml:"kl_metadata,omitempty"`
	XFMetadata []string `json:"xf_metadata,omitempty" yaml:"xf_metadata,omitempty"`
}

type ChemicalAnalysisPayload struct {
	Thickness []float64 `json:"thickness,omitempty" yaml:"thickness,omitempty"`
	CL        Layers    `json:"cl,omitempty" yaml:"cl,omitempty"`
	EC        Layers    `json:"ec,omitempty" yaml:"ec,omitempty"`
	ESP       Layers    `json:"esp,omitempty" yaml:"esp,omitempty"`
	PH        Layers    `json:"ph,omitempty" yaml:"ph,omitempty"`
	NO3N      Layers    `json:"no3n,omitempty" yaml:"no3n,omitempty"`
	NH4N      Layers    `json:"nh4n,omitempty" yaml:"nh4n,omitempty"`
}

type SamplePayload struct {
	Name      string    `json:"name" yaml:"name"`
	Thickness []float64 `json:"thickness" yaml:"thickness"`
	SW        Layers    `json:"sw,omitempty" yaml:"sw,omitempty"`
	NO3       Layers    `json:"no3,omitempty" yaml:"no3,omitempty"`
	NH4       Layers    `json:"nh4,omitempty" yaml:"nh4,omitempty"`
	CL        Layers    `json:"cl,omitempty" yaml:"cl,omitempty"`
	EC        Layers    `json:"ec,omitempty" yaml:"ec,omitempty"`
	ESP       Layers    `json:"esp,omitempty" yaml:"esp,omitempty"`
	PH        Layers    `json:"ph,omitempty" yaml:"ph,omitempty"`
	OC        Layers    `json:"oc,omitempty" yaml:"oc,omitempty"`
}

// Values converts wire values to layer values, null becoming NaN.
func (l Layers) Values() []float64 {
	if l == nil {
		return nil
	}
	out := make([]float64, len(l))
	for i, v := range l {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	return out
}

// LayersOf converts layer values to wire values, NaN becoming null.
func LayersOf(values []float64) Layers {
	if values == nil {
		return nil
	}
	out := make(Layers, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		v := v
		out[i] = &v
	}
	return out
}

// ToEntity builds the domain profile described by the payload.
func (p *SoilProfilePayload) ToEntity() *entities.SoilProfile {
	out := &entities.SoilProfile{Name: p.Name, SoilType: p.SoilType}
	if ph := p.Physical; ph != nil {
		out.Physical = &entities.Physical{
			Thickness: cloneFloats(ph.Thickness),
			LL15:      ph.LL15.Values(),
			DUL:       ph.DUL.Values(),
			KS:        ph.KS.Values(),
		}
		for _, c := range ph.Crops {
			out.Physical.Crops = append(out.Physical.Crops, &entities.CropParameters{
				Name:       c.Name,
				LL:         c.LL.Values(),
				KL:         c.KL.Values(),
				XF:         c.XF.Values(),
				LLMetadata: cloneStrings(c.LLMetadata),
				KLMetadata: cloneStrings(c.KLMetadata),
				XFMetadata: cloneStrings(c.XFMetadata),
			})
		}
	}
	if c := p.Chemical; c != nil {
		out.Chemical = &entities.ChemicalAnalysis{
			Thickness: cloneFloats(c.Thickness),
			CL:        c.CL.Values(),
			EC:        c.EC.Values(),
			ESP:       c.ESP.Values(),
			PH:        c.PH.Values(),
			NO3N:      c.NO3N.Values(),
			NH4N:      c.NH4N.Values(),
		}
	}
	for _, s := range p.Samples {
		out.Samples = append(out.Samples, &entities.Sample{
			Name:      s.Name,
			Thickness: cloneFloats(s.Thickness),
			SW:        s.SW.Values(),
			NO3:       s.NO3.Values(),
			NH4:       s.NH4.Values(),
			CL:        s.CL.Values(),
			EC:        s.EC.Values(),
			ESP:       s.ESP.Values(),
			PH:        s.PH.Values(),
			OC:        s.OC.Values(),
		})
	}
	return out
}

// FromEntity builds the payload of a domain profile.
func FromEntity(p *entities.SoilProfile) SoilProfilePayload {
	out := SoilProfilePayload{Name: p.Name, SoilType: p.SoilType}
	if ph := p.Physical; ph != nil {
		out.Physical = &PhysicalPayload{
			Thickness: cloneFloats(ph.Thickness),
			LL15:      LayersOf(ph.LL15),
			DUL:       LayersOf(ph.DUL),
			KS:        LayersOf(ph.KS),
		}
		for _, c := range ph.Crops {
			if c == nil {
				continue
			}
			out.Physical.Crops = append(out.Physical.Crops, CropPayload{
				Name:       c.Name,
				LL:         LayersOf(c.LL),
				KL:         LayersOf(c.KL),
				XF:         LayersOf(c.XF),
				LLMetadata: cloneStrings(c.LLMetadata),
				KLMetadata: cloneStrings(c.KLMetadata),
				XFMetadata: cloneStrings(c.XFMetadata),
			})
		}
	}
	if c := p.Chemical; c != nil {
		out.Chemical = &ChemicalAnalysisPayload{
			Thickness: cloneFloats(c.Thickness),
			CL:        LayersOf(c.CL),
			EC:        LayersOf(c.EC),
			ESP:       LayersOf(c.ESP),
			PH:        LayersOf(c.PH),
			NO3N:      LayersOf(c.NO3N),
			NH4N:      LayersOf(c.NH4N),
		}
	}
	for _, s := range p.Samples {
		if s == nil {
			continue
		}
		out.Samples = append(out.Samples, SamplePayload{
			Name:      s.Name,
			Thickness: cloneFloats(s.Thickness),
			SW:        LayersOf(s.SW),
			NO3:       LayersOf(s.NO3),
			NH4:       LayersOf(s.NH4),
			CL:        LayersOf(s.CL),
			EC:        LayersOf(s.EC),
			ESP:       LayersOf(s.ESP),
			PH:        LayersOf(s.PH),
			OC:        LayersOf(s.OC),
		})
	}
	return out
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}

func cloneStrings(v []string) []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v...)
}
