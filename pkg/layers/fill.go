package layers

// Fill returns values resized to n entries with every missing entry resolved.
//
// Entry 0, when missing, takes the first real value found scanning forward, or def
// when the array has none. Every later missing entry repeats the entry before it.
// The input slice is not modified.
func Fill(values []float64, n int, def float64) []float64 {
	out := Resize(values, n)
	if len(out) == 0 {
		return out
	}
	if IsMissing(out[0]) {
		out[0] = def
		for _, v := range out[1:] {
			if !IsMissing(v) {
				out[0] = v
				break
			}
		}
	}
	for i := 1; i < len(out); i++ {
		if IsMissing(out[i]) {
			out[i] = out[i-1]
		}
	}
	return out
}

// FillFrom returns values resized to n entries where each missing entry i is taken
// from fallback[i]. Entries with no fallback (fallback too short or itself missing)
// fall back to the carry-forward rule of Fill with def.
func FillFrom(values []float64, n int, fallback []float64, def float64) []float64 {
	out := Resize(values, n)
	for i := range out {
		if IsMissing(out[i]) && i < len(fallback) {
			out[i] = fallback[i]
		}
	}
	return Fill(out, n, def)
}
