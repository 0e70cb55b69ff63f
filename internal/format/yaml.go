package format

import (
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes v as a single YAML document using its yaml tags.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
