package trace

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization of an exported history.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// IsValidFormat returns true if the given string names a supported format.
func IsValidFormat(f string) bool {
	return Format(f) == FormatJSON || Format(f) == FormatYAML
}

// Save writes the records to w in the given format.
func (h *History) Save(w io.Writer, format Format) error {
	records := h.records
	if records == nil {
		records = []AssignmentRecord{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown history format %q", format)
	}
}

// Load reads records previously written by Save.
func Load(r io.Reader, format Format) (*History, error) {
	var records []AssignmentRecord
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode history: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decode history: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown history format %q", format)
	}
	return FromRecords(records), nil
}
