package entities

// ChemicalAnalysis is the chemistry of the profile. An empty Thickness means the
// analysis uses the physical thickness scheme.
type ChemicalAnalysis struct {
	Thickness []float64 `json:"thickness,omitempty"`
	CL        []float64 `json:"cl"`
	EC        []float64 `json:"ec"`
	ESP       []float64 `json:"esp"`
	PH        []float64 `json:"ph"`
	NO3N      []float64 `json:"no3n"`
	NH4N      []float64 `json:"nh4n"`
}

// Sample is a field measurement snapshot with its own thickness scheme.
type Sample struct {
	Name      string    `json:"name"`
	Thickness []float64 `json:"thickness"`
	SW        []float64 `json:"sw,omitempty"`
	NO3       []float64 `json:"no3,omitempty"`
	NH4       []float64 `json:"nh4,omitempty"`
	CL        []float64 `json:"cl,omitempty"`
	EC        []float64 `json:"ec,omitempty"`
	ESP       []float64 `json:"esp,omitempty"`
	PH        []float64 `json:"ph,omitempty"`
	OC        []float64 `json:"oc,omitempty"`
}
