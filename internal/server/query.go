package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/slopes/pkg/errors"
	"github.com/matzehuels/slopes/pkg/pipeline"
)

// paramSetter parses one query value into opts.
type paramSetter func(opts *pipeline.Options, v string) error

// queryParams uses the CLI flag names.
var queryParams = map[string]paramSetter{
	"width":        floatParam(func(o *pipeline.Options) *float64 { return &o.Width }),
	"height":       floatParam(func(o *pipeline.Options) *float64 { return &o.Height }),
	"margin-v":     floatParam(func(o *pipeline.Options) *float64 { return &o.Margins.Vertical }),
	"margin-h":     floatParam(func(o *pipeline.Options) *float64 { return &o.Margins.Horizontal }),
	"row-distance": floatParam(func(o *pipeline.Options) *float64 { return &o.DistanceBetweenRows }),
	"perlin-ratio": floatParam(func(o *pipeline.Options) *float64 { return &o.PerlinRatio }),
	"samples":      intParam(func(o *pipeline.Options) *int { return &o.SamplesPerRow }),
	"rows":         intParam(func(o *pipeline.Options) *int { return &o.NumRows }),
	"row-height":   floatParam(func(o *pipeline.Options) *float64 { return &o.RowHeightRatio }),
	"seed": func(o *pipeline.Options, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		o.Seed = n
		return err
	},
	"jitter-seed": func(o *pipeline.Options, v string) error {
		n, err := strconv.ParseUint(v, 10, 64)
		o.JitterSeed = n
		return err
	},
	"noise":        stringParam(func(o *pipeline.Options) *string { return &o.Noise }),
	"stroke":       stringParam(func(o *pipeline.Options) *string { return &o.Stroke }),
	"stroke-width": floatParam(func(o *pipeline.Options) *float64 { return &o.StrokeWidth }),
	"background":   stringParam(func(o *pipeline.Options) *string { return &o.Background }),
	"unit":         stringParam(func(o *pipeline.Options) *string { return &o.Unit }),
	"precision":    intParam(func(o *pipeline.Options) *int { return &o.Precision }),
	"scale":        floatParam(func(o *pipeline.Options) *float64 { return &o.Scale }),
	"pen-scale":    floatParam(func(o *pipeline.Options) *float64 { return &o.PenScale }),
	"pen":          intParam(func(o *pipeline.Options) *int { return &o.Pen }),
	"refresh": func(o *pipeline.Options, v string) error {
		b, err := strconv.ParseBool(v)
		o.Refresh = b
		return err
	},
}

// parseQuery overlays the query parameters on the default options. The
// last value of a repeated parameter wins.
func parseQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	for key, vals := range q {
		set, ok := queryParams[key]
		if !ok {
			return opts, errors.New(errors.ErrCodeInvalidInput, "unknown parameter %q", key)
		}
		if len(vals) == 0 {
			continue
		}
		v := vals[len(vals)-1]
		if err := set(&opts, v); err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "parameter %s: invalid value %q", key, v)
		}
	}
	return opts, nil
}

func floatParam(field func(*pipeline.Options) *float64) paramSetter {
	return func(o *pipeline.Options, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(o) = f
		return nil
	}
}

func intParam(field func(*pipeline.Options) *int) paramSetter {
	return func(o *pipeline.Options, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(o) = n
		return nil
	}
}

func stringParam(field func(*pipeline.Options) *string) paramSetter {
	return func(o *pipeline.Options, v string) error {
		*field(o) = v
		return nil
	}
}
