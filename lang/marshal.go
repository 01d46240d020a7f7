package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToNative converts a value to its native Go representation: nil, bool,
// int64, float64, string, or map[string]any for records. Non-finite
// doubles have no JSON or YAML encoding and are rejected.
func (v Val) ToNative() (any, error) {
	switch v.Kind {
	case KindNil:
		return nil, nil
	case KindBool:
		return v.Bool, nil
	case KindInt:
		return v.Int, nil
	case KindDouble:
		if math.IsInf(v.Double, 0) || math.IsNaN(v.Double) {
			return nil, ErrNonFiniteDouble.With(slog.Float64("value", v.Double))
		}

		return v.Double, nil
	case KindStr:
		return v.Str, nil
	case KindRec:
		m := make(map[string]any, v.Rec.Len())

		for _, name := range v.Rec.Names() {
			fv, _ := v.Rec.Get(name)

			nv, err := fv.ToNative()
			if err != nil {
				return nil, err
			}

			m[name] = nv
		}

		return m, nil
	default:
		return nil, ErrNotSupported.With(slog.String("type", v.TypeName()))
	}
}

// WriteJSON writes the value as JSON to the writer, followed by a newline.
// A positive indent selects pretty-printed output.
func (v Val) WriteJSON(_ context.Context, w io.Writer, indent int) error {
	native, err := v.ToNative()
	if err != nil {
		return err
	}

	var data []byte

	if indent > 0 {
		data, err = json.MarshalIndent(native, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(native)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// WriteYAML writes the value as YAML to the writer. A non-positive indent
// selects flow style.
func (v Val) WriteYAML(ctx context.Context, w io.Writer, indent int) error {
	native, err := v.ToNative()
	if err != nil {
		return err
	}

	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, native, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
