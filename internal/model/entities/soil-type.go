package entities

import "strings"

// SoilType is the canonical soil classification used by the regression tables.
type SoilType string

const (
	SoilTypeUnknown       SoilType = ""
	SoilTypeBlackVertosol SoilType = "black vertosol"
	SoilTypeGreyVertosol  SoilType = "grey vertosol"
)

// ParseSoilType normalizes a free-text classification label. Labels that are not
// one of the known types map to SoilTypeUnknown.
func ParseSoilType(label string) SoilType {
	s := strings.Join(strings.Fields(strings.ToLower(label)), " ")
	s = strings.ReplaceAll(s, "gray", "grey")
	switch SoilType(s) {
	case SoilTypeBlackVertosol:
		return SoilTypeBlackVertosol
	case SoilTypeGreyVertosol:
		return SoilTypeGreyVertosol
	default:
		return SoilTypeUnknown
	}
}
