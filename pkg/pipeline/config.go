package pipeline

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/slopes/pkg/errors"
)

// LoadOptionsFile reads a TOML options file. Keys absent from the file keep
// their [DefaultOptions] values.
//
//	width = 1100
//	height = 850
//	num_rows = 60
//	noise = "simplex"
//	formats = ["svg", "hpgl"]
//
//	[margins]
//	vertical = 50
//	horizontal = 100
func LoadOptionsFile(path string) (Options, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	return LoadOptions(f)
}

// LoadOptions decodes TOML options from r on top of [DefaultOptions].
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.NewDecoder(r).Decode(&opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return opts, nil
}

// EncodeOptions writes opts as TOML, the inverse of [LoadOptions]. The CLI
// uses it to print the effective configuration.
func EncodeOptions(w io.Writer, opts Options) error {
	return toml.NewEncoder(w).Encode(opts)
}
