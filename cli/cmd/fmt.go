package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/konfi/lang"
)

// Fmt reads module source, parses it, and reprints it with canonical
// formatting. Let bindings are preserved ahead of the module expression.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Module source file or '-' for stdin." name:"source"`

	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	return f.run(ctx, stdoutFrom(ctx))
}

func (f *Fmt) run(ctx context.Context, w io.Writer) error {
	mod, err := parseSource(ctx, f.Source)
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "fmt"),
				slog.String("source", f.Source),
			)
	}

	return mod.Format(w, f.Indent)
}
