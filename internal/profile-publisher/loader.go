package profile_publisher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	msg "github.com/LeonardoBeccarini/soilparams/internal/model/messages"
)

// ProfileFile is a soil profile read from disk, ready to publish.
type ProfileFile struct {
	Path    string
	ID      string // topic segment
	Payload []byte // JSON
}

func isProfileFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadProfiles reads every .json/.yaml/.yml profile in dir, sorted by file name.
// YAML documents are re-encoded as JSON. A profile without a name takes the file name.
func LoadProfiles(dir string) ([]ProfileFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read profile dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isProfileFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]ProfileFile, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		pf, err := LoadProfile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, pf)
	}
	return out, nil
}

func LoadProfile(path string) (ProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProfileFile{}, fmt.Errorf("read profile: %w", err)
	}
	doc, err := msg.DecodeProfile(data, msg.FormatFor(path))
	if err != nil {
		return ProfileFile{}, fmt.Errorf("%s: %w", path, err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return ProfileFile{}, fmt.Errorf("%s: encode: %w", path, err)
	}
	return ProfileFile{Path: path, ID: msg.ProfileSlug(doc.Name), Payload: payload}, nil
}
