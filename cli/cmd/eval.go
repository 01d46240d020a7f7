package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/konfi/lang"
)

// Eval evaluates a module and prints its value in the chosen output format.
type Eval struct {
	Source string `arg:"" default:"-" help:"Module source file or '-' for stdin." name:"source"`

	Output string `default:"json" enum:"konfi,json,yaml" help:"Output format"            short:"o"`
	Indent int    `default:"2"                            help:"Indent width (0 compact)" short:"i"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	return e.run(ctx, stdoutFrom(ctx))
}

func (e *Eval) run(ctx context.Context, w io.Writer) error {
	mod, err := parseSource(ctx, e.Source)
	if err != nil {
		return err
	}

	val, err := lang.Eval(mod.Expr, lang.GlobalContext())
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("source", e.Source),
			)
	}

	switch e.Output {
	case "json":
		return val.WriteJSON(ctx, w, e.Indent)

	case "yaml":
		return val.WriteYAML(ctx, w, e.Indent)

	case "konfi":
		_, err = fmt.Fprintln(w, lang.FormatValue(val, e.Indent))

		return err

	default:
		return ErrUnknownOutput.With(slog.String("output", e.Output))
	}
}
