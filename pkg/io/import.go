package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/slopes/pkg/errors"
	"github.com/matzehuels/slopes/pkg/geom"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// ReadJSON decodes a drawing document from r.
//
// ReadJSON returns an INVALID_DRAWING error if:
//   - The JSON is malformed
//   - The version is missing or newer than [FormatVersion]
//   - A polyline has fewer than two points
//   - A coordinate is not finite
//
// The stored configuration is returned as-is and is not re-validated, so
// documents from hand-edited configs still render. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*slopes.Drawing, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDrawing, err, "decode drawing")
	}

	if data.Version < 1 || data.Version > FormatVersion {
		return nil, errors.New(errors.ErrCodeInvalidDrawing, "unsupported drawing version %d", data.Version)
	}

	for i, line := range data.Polylines {
		if len(line) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidDrawing, "polyline %d has %d points, need at least 2", i, len(line))
		}
		for j, p := range line {
			if !geom.Finite(p) {
				return nil, errors.New(errors.ErrCodeInvalidDrawing, "polyline %d point %d is not finite", i, j)
			}
		}
	}

	return &slopes.Drawing{
		Config:    data.Config,
		Polylines: data.Polylines,
		Stats:     data.Stats,
	}, nil
}

// ImportJSON reads a drawing from a JSON file at path.
func ImportJSON(path string) (*slopes.Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
