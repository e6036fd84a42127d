package messages

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a soil profile document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor guesses the document format from a file name or a content type.
// Anything that does not look like YAML is treated as JSON.
func FormatFor(nameOrContentType string) Format {
	s := strings.ToLower(strings.TrimSpace(nameOrContentType))
	switch filepath.Ext(s) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	if strings.Contains(s, "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// DecodeProfile decodes a soil profile document.
func DecodeProfile(data []byte, f Format) (SoilProfilePayload, error) {
	var p SoilProfilePayload
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &p)
	case FormatJSON, "":
		err = json.Unmarshal(data, &p)
	default:
		return p, fmt.Errorf("unsupported profile format %q", f)
	}
	if err != nil {
		return p, fmt.Errorf("decode %s soil profile: %w", f, err)
	}
	return p, nil
}
