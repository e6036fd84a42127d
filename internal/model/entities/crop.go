package entities

// Estimated tags a layer value that was synthesized rather than measured.
const Estimated = "Estimated"

// CropParameters are the crop specific per-layer parameters of a physical profile.
type CropParameters struct {
	Name       string    `json:"name"`
	LL         []float64 `json:"ll"`
	KL         []float64 `json:"kl"`
	XF         []float64 `json:"xf"`
	LLMetadata []string  `json:"ll_metadata,omitempty"`
	KLMetadata []string  `json:"kl_metadata,omitempty"`
	XFMetadata []string  `json:"xf_metadata,omitempty"`
}

// IsCrop reports whether the crop is the named one, ignoring case.
func (c *CropParameters) IsCrop(name string) bool {
	return CanonicalName(c.Name) == CanonicalName(name)
}

// EstimatedCount returns how many layer values carry the Estimated tag.
func (c *CropParameters) EstimatedCount() int {
	n := 0
	for _, md := range [][]string{c.LLMetadata, c.KLMetadata, c.XFMetadata} {
		for _, m := range md {
			if m == Estimated {
				n++
			}
		}
	}
	return n
}
