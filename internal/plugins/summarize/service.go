package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tasknest/tasknest/internal/apperror"
	"github.com/tasknest/tasknest/internal/plugins/todos"
)

// SummaryService defines the business logic contract for summarization.
type SummaryService interface {
	// Summarize generates a summary of the owner's outstanding todos and
	// forwards it to the team chat. When delivery fails after a successful
	// generation, the returned error is an upstream error AND the result is
	// non-nil -- callers should surface both.
	Summarize(ctx context.Context, ownerID string) (*SummaryResult, error)
}

// summaryService implements SummaryService on top of the todo service and
// the two upstream clients.
type summaryService struct {
	todos     todos.TodoService
	generator Generator
	notifier  Notifier
}

// NewSummaryService creates a new summarization service.
func NewSummaryService(todoSvc todos.TodoService, generator Generator, notifier Notifier) SummaryService {
	return &summaryService{
		todos:     todoSvc,
		generator: generator,
		notifier:  notifier,
	}
}

// Summarize gathers incomplete todos, generates the summary, and delivers
// it. With nothing outstanding it returns 404 without touching the
// generation API -- no summary of "nothing to do" is ever produced.
func (s *summaryService) Summarize(ctx context.Context, ownerID string) (*SummaryResult, error) {
	outstanding, err := s.todos.ListIncomplete(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(outstanding) == 0 {
		return nil, apperror.NewNotFound("no outstanding tasks to summarize")
	}

	text, err := s.generator.Generate(ctx, buildPrompt(outstanding))
	if err != nil {
		return nil, apperror.NewBadGateway("text generation failed",
			fmt.Errorf("generating summary: %w", err))
	}

	result := &SummaryResult{Text: text}

	if err := s.notifier.Notify(ctx, formatMessage(text)); err != nil {
		slog.Warn("summary delivery failed",
			slog.String("user_id", ownerID),
			slog.Any("error", err),
		)
		// Generation succeeded; hand the text back alongside the error.
		return result, apperror.NewBadGateway("summary generated but delivery failed",
			fmt.Errorf("delivering summary: %w", err))
	}

	slog.Info("summary delivered",
		slog.String("user_id", ownerID),
		slog.Int("task_count", len(outstanding)),
	)

	return result, nil
}

// buildPrompt joins the outstanding todo titles into the generation prompt.
func buildPrompt(outstanding []todos.Todo) string {
	titles := make([]string, len(outstanding))
	for i, t := range outstanding {
		titles[i] = t.Title
	}

	return fmt.Sprintf(
		"Summarize the following todos: %s.\nThe summary should be a short and concise ordered list of the tasks.",
		strings.Join(titles, ", "),
	)
}

// formatMessage wraps the generated text in the team chat message format.
func formatMessage(text string) string {
	return "📝 *New Todo Summary Posted:*\n" + text
}
