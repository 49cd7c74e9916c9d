package cli

import (
	"context"

	"github.com/thenoetrevino/taskboard/internal/app"
	"github.com/thenoetrevino/taskboard/internal/cli/styles"
)

type appKey struct{}

// WithApp attaches an already built App to ctx. Commands executed with
// this context use it instead of loading configuration, and leave closing
// it to the caller.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// GetCLIFromContext returns a CLI around the App attached by WithApp, or a
// freshly loaded one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		styles.Init(a.Theme(ctx))
		return &CLI{App: a, Config: a.Config}, nil
	}
	return NewCLI(ctx)
}
