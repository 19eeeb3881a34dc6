package permission

import (
	"context"
	"log/slog"

	"github.com/soocke/vacation-cam-go/domain/task"
)

// Kind names a runtime permission.
type Kind int

const (
	Camera Kind = iota
	Location
)

func (k Kind) String() string {
	switch k {
	case Camera:
		return "camera"
	case Location:
		return "location"
	default:
		return "unknown"
	}
}

// Prompter asks the user for a permission and reports the decision.
// Request blocks until the user decides or ctx ends.
type Prompter interface {
	Request(ctx context.Context, kind Kind) (bool, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, kind Kind) (bool, error)

func (f PrompterFunc) Request(ctx context.Context, kind Kind) (bool, error) { return f(ctx, kind) }

// Static answers every request from a fixed table. Kinds missing from the table are denied.
type Static map[Kind]bool

func (s Static) Request(_ context.Context, kind Kind) (bool, error) { return s[kind], nil }

// AllowAll grants every permission without prompting.
func AllowAll() Static { return Static{Camera: true, Location: true} }

// Gate issues permission requests and runs continuations for granted ones.
// Decisions are not cached; every call prompts again.
type Gate struct {
	prompter Prompter
	logger   *slog.Logger
}

// NewGate returns a gate asking prompter.
func NewGate(logger *slog.Logger, prompter Prompter) *Gate {
	return &Gate{prompter: prompter, logger: logger}
}

// Request prompts for kind. The task resolves with the decision; a prompter
// failure counts as a denial. It rejects only when ctx ends first.
func (g *Gate) Request(ctx context.Context, kind Kind) *task.Task[bool] {
	return task.Run(ctx, g.logger, func(ctx context.Context) (bool, error) {
		granted, err := g.prompter.Request(ctx, kind)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			if g.logger != nil {
				g.logger.Warn("permission prompt failed", "kind", kind.String(), "error", err)
			}
			granted = false
		}
		if g.logger != nil {
			g.logger.Info("permission decided", "kind", kind.String(), "granted", granted)
		}
		return granted, nil
	})
}

// RequestThen prompts for kind and runs cont only when granted. The returned
// task completes after cont has returned. On denial nothing else happens.
func (g *Gate) RequestThen(ctx context.Context, kind Kind, cont func()) *task.Task[bool] {
	decision := g.Request(ctx, kind)
	return task.Run(ctx, g.logger, func(ctx context.Context) (bool, error) {
		granted, err := decision.Await(ctx)
		if err != nil {
			return false, err
		}
		if granted && cont != nil {
			cont()
		}
		return granted, nil
	})
}
