// Package chat sequences one chat turn: store read, prompt assembly, model
// call, normalization, store write. Every failure is translated into a
// categorized fault before it reaches the HTTP layer.
package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"buildflow/internal/fault"
	"buildflow/internal/llm"
	"buildflow/internal/store"
)

// ProjectStore is the slice of the diagram store the chat flow uses.
type ProjectStore interface {
	Project(ctx context.Context, projectID string) (store.ProjectRow, error)
	History(ctx context.Context, projectID string, limit int) ([]store.Message, error)
	AppendExchange(ctx context.Context, projectID, userMsg, assistantMsg string) error
}

// ModelClient resolves and calls the language model.
type ModelClient interface {
	ResolveModel(ctx context.Context) (string, error)
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type Service struct {
	store ProjectStore // nil when Supabase is unconfigured
	model ModelClient  // nil when the Gemini key is absent
	log   *zap.Logger
}

func New(projects ProjectStore, model ModelClient, log *zap.Logger) *Service {
	return &Service{store: projects, model: model, log: log}
}

// Send runs one chat turn. Configuration checks come before any network or
// store call, so a failure kind reflects the first unmet precondition rather
// than a downstream symptom.
func (s *Service) Send(ctx context.Context, projectID, message string) (llm.Result, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return llm.Result{}, fault.Newf(fault.BadRequest, "Invalid projectId format: %s", projectID)
	}
	if s.model == nil {
		return llm.Result{}, fault.New(fault.ServiceUnavailable, "Gemini is not configured")
	}
	if s.store == nil {
		return llm.Result{}, fault.New(fault.ServiceUnavailable, "Supabase is not configured")
	}

	project, err := s.store.Project(ctx, projectID)
	if err != nil {
		return llm.Result{}, err
	}

	// History is an enhancement, not a correctness requirement: a failed
	// load degrades to an empty conversation.
	rows, err := s.store.History(ctx, projectID, store.HistoryLimit)
	if err != nil {
		s.log.Warn("chat history load failed, continuing without history",
			zap.String("project_id", projectID), zap.Error(err))
		rows = nil
	}
	history := make([]llm.HistoryMessage, 0, len(rows))
	for _, r := range rows {
		history = append(history, llm.HistoryMessage{Role: r.Role, Content: r.Content})
	}

	prompt := llm.BuildPrompt(project.Diagram, history, message)

	model, err := s.model.ResolveModel(ctx)
	if err != nil {
		return llm.Result{}, fault.Wrap(fault.Internal, err, "No usable Gemini model: "+err.Error())
	}

	text, err := s.model.Generate(ctx, model, prompt)
	if err != nil {
		if llm.IsRateLimited(err) {
			return llm.Result{}, fault.Wrap(fault.RateLimited, err, "Gemini rate limit exceeded: "+err.Error())
		}
		return llm.Result{}, fault.Wrap(fault.Internal, err, "Gemini request failed: "+err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return llm.Result{}, fault.New(fault.Internal, "Empty response from Gemini")
	}

	result := llm.Normalize(text)

	// Best effort: the reply still goes back to the caller even when the
	// exchange could not be recorded.
	if err := s.store.AppendExchange(ctx, projectID, message, result.Message); err != nil {
		s.log.Warn("failed to persist chat exchange",
			zap.String("project_id", projectID), zap.Error(err))
	}

	return result, nil
}
