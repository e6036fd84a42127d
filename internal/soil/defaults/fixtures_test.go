package defaults

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

var nan = math.NaN()

// referenceThickness matches the crop KL table and the predicted layer scheme.
var referenceThickness = []float64{150, 150, 300, 300, 300, 300, 300}

func blackVertosol() *entities.SoilProfile {
	return &entities.SoilProfile{
		Name:     "Jimbour",
		SoilType: "Black Vertosol",
		Physical: &entities.Physical{
			Thickness: append([]float64(nil), referenceThickness...),
			LL15:      []float64{0.22, 0.23, 0.25, 0.27, 0.29, 0.30, 0.31},
			DUL:       []float64{0.48, 0.48, 0.47, 0.46, 0.45, 0.44, 0.43},
		},
	}
}

func cloneProfile(t *testing.T, p *entities.SoilProfile) *entities.SoilProfile {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(p))
	var out entities.SoilProfile
	require.NoError(t, gob.NewDecoder(&buf).Decode(&out))
	return &out
}

func requireComplete(t *testing.T, n int, name string, values []float64) {
	t.Helper()
	require.Len(t, values, n, name)
	for i, v := range values {
		require.False(t, math.IsNaN(v), "%s[%d] is missing", name, i)
	}
}
