// Package tables holds the read-only empirical data used to estimate crop
// parameters: default KL curves per crop and the vertosol lower limit regressions.
//
// The data is decoded once from embedded YAML at package initialisation. Every
// accessor returns copies, so callers can never alter the shared tables.
package tables

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

var (
	//go:embed crop_kl.yaml
	cropKLData []byte
	//go:embed predicted_ll.yaml
	predictedLLData []byte
)

var (
	klTable  = mustDecodeKL(cropKLData)
	regTable = mustDecodeRegression(predictedLLData)
)

type klDocument struct {
	Depths []float64 `yaml:"depths"`
	Crops  []struct {
		Name string    `yaml:"name"`
		KL   []float64 `yaml:"kl"`
	} `yaml:"crops"`
}

type regressionDocument struct {
	Thickness []float64 `yaml:"thickness"`
	Soils     []struct {
		SoilType string `yaml:"soil_type"`
		Crops    []struct {
			Name string    `yaml:"name"`
			A    []float64 `yaml:"a"`
			B    float64   `yaml:"b"`
		} `yaml:"crops"`
	} `yaml:"soils"`
}

func decodeKL(data []byte) (*cropKLTable, error) {
	var doc klDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode crop KL table: %w", err)
	}
	t := &cropKLTable{
		depths: doc.Depths,
		rows:   make(map[string]cropKLRow, len(doc.Crops)),
	}
	for _, c := range doc.Crops {
		if len(c.KL) != len(doc.Depths) {
			return nil, fmt.Errorf("crop KL table: %s has %d values, want %d", c.Name, len(c.KL), len(doc.Depths))
		}
		key := entities.CanonicalName(c.Name)
		if _, dup := t.rows[key]; dup {
			return nil, fmt.Errorf("crop KL table: duplicate crop %s", c.Name)
		}
		t.rows[key] = cropKLRow{name: c.Name, kl: c.KL}
		t.order = append(t.order, key)
	}
	return t, nil
}

func decodeRegression(data []byte) (*regressionTable, error) {
	var doc regressionDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode regression table: %w", err)
	}
	t := &regressionTable{
		thickness: doc.Thickness,
		soils:     make(map[entities.SoilType]*soilRegressions, len(doc.Soils)),
	}
	for _, s := range doc.Soils {
		st := entities.ParseSoilType(s.SoilType)
		if st == entities.SoilTypeUnknown {
			return nil, fmt.Errorf("regression table: unknown soil type %q", s.SoilType)
		}
		sr := &soilRegressions{coeffs: make(map[string]Coefficients, len(s.Crops))}
		for _, c := range s.Crops {
			if len(c.A) != len(doc.Thickness) {
				return nil, fmt.Errorf("regression table: %s/%s has %d coefficients, want %d",
					s.SoilType, c.Name, len(c.A), len(doc.Thickness))
			}
			sr.crops = append(sr.crops, c.Name)
			sr.coeffs[entities.CanonicalName(c.Name)] = Coefficients{A: c.A, B: c.B}
		}
		t.soils[st] = sr
	}
	return t, nil
}

func mustDecodeKL(data []byte) *cropKLTable {
	t, err := decodeKL(data)
	if err != nil {
		panic(err)
	}
	return t
}

func mustDecodeRegression(data []byte) *regressionTable {
	t, err := decodeRegression(data)
	if err != nil {
		panic(err)
	}
	return t
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
