package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "", defaultBaseName},
		{"", "drawings/alps.json", "drawings/alps"},
		{"range", "", "range"},
		{"range.svg", "", "range"},
		{"out/range.hpgl", "", "out/range"},
		{"range.v2", "", "range.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		output  string
		input   string
		want    map[string]string
	}{
		{
			name:    "single explicit",
			formats: []string{"png"},
			output:  "poster.image",
			want:    map[string]string{"png": "poster.image"},
		},
		{
			name:    "multiple from output",
			formats: []string{"svg", "hpgl"},
			output:  "range.svg",
			want:    map[string]string{"svg": "range.svg", "hpgl": "range.hpgl"},
		},
		{
			name:    "from input",
			formats: []string{"svg", "pdf"},
			input:   "saved.json",
			want:    map[string]string{"svg": "saved.svg", "pdf": "saved.pdf"},
		},
		{
			name:    "default name",
			formats: []string{"svg"},
			want:    map[string]string{"svg": defaultBaseName + ".svg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.formats, tt.output, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"hpgl": []byte("IN;"),
	}

	paths, err := writeArtifacts(nil, artifacts, []string{"svg", "hpgl"}, filepath.Join(dir, "sub", "range"), "")
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := []string{filepath.Join(dir, "sub", "range.svg"), filepath.Join(dir, "sub", "range.hpgl")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	for i, f := range []string{"svg", "hpgl"} {
		data, err := os.ReadFile(paths[i])
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, artifacts[f]) {
			t.Errorf("%s content = %q, want %q", f, data, artifacts[f])
		}
	}
}

func TestWriteArtifactsStdout(t *testing.T) {
	var buf bytes.Buffer
	paths, err := writeArtifacts(&buf, map[string][]byte{"svg": []byte("<svg/>")}, []string{"svg"}, stdoutPath, "")
	if err != nil {
		t.Fatal(err)
	}
	if paths != nil {
		t.Errorf("paths = %v, want none", paths)
	}
	if buf.String() != "<svg/>" {
		t.Errorf("stdout = %q", buf.String())
	}

	_, err = writeArtifacts(&buf, nil, []string{"svg", "png"}, stdoutPath, "")
	if err == nil {
		t.Error("expected error for several formats on stdout")
	}
}

func TestWriteArtifactsMissing(t *testing.T) {
	_, err := writeArtifacts(nil, map[string][]byte{}, []string{"svg"}, filepath.Join(t.TempDir(), "x.svg"), "")
	if err == nil {
		t.Error("expected error for a missing artifact")
	}
}
