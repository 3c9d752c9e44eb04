package sink

import (
	"bytes"

	slopesio "github.com/matzehuels/slopes/pkg/io"
	"github.com/matzehuels/slopes/pkg/slopes"
)

// RenderJSON renders the drawing as the JSON document read back by
// [slopesio.ReadJSON].
func RenderJSON(d *slopes.Drawing) ([]byte, error) {
	var buf bytes.Buffer
	if err := slopesio.WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
