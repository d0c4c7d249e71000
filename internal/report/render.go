package report

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"primer/internal/history"
	"primer/internal/lesson"
)

// RenderAttemptHTML renders the attempt report into a string.
func RenderAttemptHTML(ctx context.Context, module lesson.Module, attempt history.Attempt) (string, error) {
	return renderString(ctx, AttemptPage(module, attempt))
}

// RenderOverviewHTML renders the progress overview into a string.
func RenderOverviewHTML(ctx context.Context, overview Overview) (string, error) {
	return renderString(ctx, OverviewPage(overview))
}

func renderString(ctx context.Context, component templ.Component) (string, error) {
	var builder strings.Builder
	if err := component.Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
