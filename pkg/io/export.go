package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/slopes/pkg/geom"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// FormatVersion is the document version written by [WriteJSON].
const FormatVersion = 1

type document struct {
	Version   int             `json:"version"`
	Config    slopes.Config   `json:"config"`
	Polylines []geom.Polyline `json:"polylines"`
	Stats     slopes.Stats    `json:"stats"`
}

// WriteJSON encodes a drawing as an indented JSON document and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(d *slopes.Drawing, w io.Writer) error {
	out := document{
		Version:   FormatVersion,
		Config:    d.Config,
		Polylines: d.Polylines,
		Stats:     d.Stats,
	}
	if out.Polylines == nil {
		out.Polylines = []geom.Polyline{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a drawing to a JSON file at path.
func ExportJSON(d *slopes.Drawing, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}
