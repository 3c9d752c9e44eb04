package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/slopes/pkg/errors"
)

// converter is the librsvg command line tool.
const converter = "rsvg-convert"

// convertTimeout bounds a single conversion. Large drawings convert in well
// under a second.
const convertTimeout = time.Minute

const installHint = "install librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)"

// ToPDF converts an SVG document to PDF. The page takes the SVG's width and
// height, units included.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts an SVG document to PNG, enlarged by scale.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', -1, 64))
}

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

func convert(svg []byte, format string, args ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output needs %s: %s", format, converter, installHint)
	}

	ctx, cancel := context.WithTimeout(context.Background(), convertTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, converter, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s %s: %s", converter, format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
