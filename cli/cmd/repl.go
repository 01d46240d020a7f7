package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/konfi/cli/cmd/repl"
	"github.com/ardnew/konfi/lang"
	"github.com/ardnew/konfi/log"
)

// Repl loads a module and evaluates expressions against it interactively.
// Fields of the module's record are in scope as variables.
type Repl struct {
	Source string `arg:"" optional:"" help:"Module source file or '-' for stdin." name:"source"`

	Cache string `default:"${cache}" help:"Directory for interactive history" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	sess := lang.NewSession()

	if r.Source != "" {
		mod, err := parseSource(ctx, r.Source)
		if err != nil {
			return err
		}

		if _, err := sess.Load(mod); err != nil {
			return lang.WrapError(err).
				With(
					slog.String("command", "repl"),
					slog.String("source", r.Source),
				)
		}
	}

	return repl.Run(ctx, sess, r.Cache, log.Default())
}
