package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/slopes/pkg/pipeline"
)

// stdoutPath as -o writes a single artifact to stdout.
const stdoutPath = "-"

// basePath derives the extension-less output path shared by all formats.
// A known format extension on output is stripped; without output the input
// file name (or defaultBaseName) is used.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultBaseName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its destination file. A single format
// with an explicit output path is written exactly there.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes every artifact and returns the written paths in
// format order. With output "-" the single artifact goes to stdout.
func writeArtifacts(stdout io.Writer, artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	if output == stdoutPath {
		if len(formats) != 1 {
			return nil, fmt.Errorf("-o - needs exactly one format, got %d", len(formats))
		}
		_, err := stdout.Write(artifacts[formats[0]])
		return nil, err
	}

	paths := outputPaths(formats, output, input)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return written, fmt.Errorf("no %s artifact rendered", f)
		}
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
