package entities

import (
	"errors"
	"strings"
)

// ErrDuplicateCrop is returned when a crop with the same (case-insensitive) name
// is already attached to a physical profile.
var ErrDuplicateCrop = errors.New("duplicate crop")

// SoilProfile is a partially specified soil: a classification label plus the
// depth-layered records owned by it.
type SoilProfile struct {
	Name     string            `json:"name"`
	SoilType string            `json:"soil_type"` // e.g. "Black Vertosol"
	Physical *Physical         `json:"physical,omitempty"`
	Chemical *ChemicalAnalysis `json:"chemical,omitempty"`
	Samples  []*Sample         `json:"samples,omitempty"`
}

// Classification returns the canonical soil type for the profile label.
func (p *SoilProfile) Classification() SoilType {
	return ParseSoilType(p.SoilType)
}

// InitialSample is the first sample attached to the profile, or nil.
func (p *SoilProfile) InitialSample() *Sample {
	for _, s := range p.Samples {
		if s != nil {
			return s
		}
	}
	return nil
}

// Physical holds the layer thickness scheme (mm) and the physical water limits.
type Physical struct {
	Thickness []float64         `json:"thickness"`
	LL15      []float64         `json:"ll15"`
	DUL       []float64         `json:"dul"`
	KS        []float64         `json:"ks,omitempty"`
	Crops     []*CropParameters `json:"crops,omitempty"`
}

// Crop finds a crop by name, ignoring case. Returns nil when not present.
func (p *Physical) Crop(name string) *CropParameters {
	key := CanonicalName(name)
	for _, c := range p.Crops {
		if c != nil && CanonicalName(c.Name) == key {
			return c
		}
	}
	return nil
}

// HasCrop reports whether a crop with the given name is attached.
func (p *Physical) HasCrop(name string) bool {
	return p.Crop(name) != nil
}

// AddCrop attaches a crop, keeping names unique under case-insensitive comparison.
func (p *Physical) AddCrop(c *CropParameters) error {
	if p.HasCrop(c.Name) {
		return ErrDuplicateCrop
	}
	p.Crops = append(p.Crops, c)
	return nil
}

// Layers is the number of layers in the thickness scheme.
func (p *Physical) Layers() int { return len(p.Thickness) }

// CanonicalName is the identity used to match crop names against each other and
// against the lookup tables.
func CanonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
