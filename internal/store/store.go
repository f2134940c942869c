// Package store wraps the Supabase PostgREST API. It is the only persistence
// layer: projects, diagrams, and chat history all live in Supabase tables
// that this service reads and appends to but never owns.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"buildflow/internal/diagram"
	"buildflow/internal/fault"
)

// HistoryLimit caps how many recent messages feed the prompt.
const HistoryLimit = 20

type Store struct {
	client *supabase.Client
}

func New(url, serviceKey string) (*Store, error) {
	client, err := supabase.NewClient(url, serviceKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("store: create supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

// ProjectRow is the subset of the projects table the chat and deploy flows
// read.
type ProjectRow struct {
	Diagram diagram.Diagram `json:"diagram_json"`
	Name    string          `json:"name"`
}

// Message is one chat history row. Ordering by CreatedAt defines the
// conversation.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
}

type messageInsert struct {
	ProjectID string `json:"project_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
}

// Project loads one project's diagram snapshot and name.
func (s *Store) Project(ctx context.Context, projectID string) (ProjectRow, error) {
	data, _, err := s.client.From("projects").
		Select("diagram_json, name", "", false).
		Eq("id", projectID).
		Single().
		ExecuteWithContext(ctx)
	if err != nil {
		return ProjectRow{}, classify(err, "loading project")
	}
	var row ProjectRow
	if err := json.Unmarshal(data, &row); err != nil {
		return ProjectRow{}, fault.Wrap(fault.Internal, err, "decoding project row")
	}
	return row, nil
}

// History returns up to limit most-recent messages, oldest first.
func (s *Store) History(ctx context.Context, projectID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = HistoryLimit
	}
	data, _, err := s.client.From("chat_messages").
		Select("role, content, created_at", "", false).
		Eq("project_id", projectID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Limit(limit, "").
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, classify(err, "loading chat history")
	}
	var rows []Message
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fault.Wrap(fault.Internal, err, "decoding chat history")
	}
	return rows, nil
}

// AppendExchange records one user/assistant round trip as two rows.
func (s *Store) AppendExchange(ctx context.Context, projectID, userMsg, assistantMsg string) error {
	rows := []messageInsert{
		{ProjectID: projectID, Role: "user", Content: userMsg},
		{ProjectID: projectID, Role: "assistant", Content: assistantMsg},
	}
	_, _, err := s.client.From("chat_messages").
		Insert(rows, false, "", "", "").
		ExecuteWithContext(ctx)
	if err != nil {
		return classify(err, "saving chat history")
	}
	return nil
}

// SaveDeployment writes deployment metadata onto the project row.
func (s *Store) SaveDeployment(ctx context.Context, projectID string, metadata any) error {
	_, _, err := s.client.From("projects").
		Update(map[string]any{"deployment_metadata": metadata}, "", "").
		Eq("id", projectID).
		ExecuteWithContext(ctx)
	if err != nil {
		return classify(err, "saving deployment metadata")
	}
	return nil
}

// Deployment returns the stored deployment metadata, or nil when the project
// has never been deployed.
func (s *Store) Deployment(ctx context.Context, projectID string) (json.RawMessage, error) {
	data, _, err := s.client.From("projects").
		Select("deployment_metadata", "", false).
		Eq("id", projectID).
		Single().
		ExecuteWithContext(ctx)
	if err != nil {
		return nil, classify(err, "loading deployment metadata")
	}
	var row struct {
		DeploymentMetadata json.RawMessage `json:"deployment_metadata"`
	}
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fault.Wrap(fault.Internal, err, "decoding deployment metadata")
	}
	if len(row.DeploymentMetadata) == 0 || string(row.DeploymentMetadata) == "null" {
		return nil, nil
	}
	return row.DeploymentMetadata, nil
}

// classify maps a PostgREST error onto the failure taxonomy by matching the
// error text. PGRST116 is PostgREST's "no rows returned" code for .single().
func classify(err error, doing string) *fault.Error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "PGRST116"),
		strings.Contains(lower, "no rows"),
		strings.Contains(lower, "not found"):
		return fault.Wrap(fault.NotFound, err, "Project not found")
	case strings.Contains(lower, "invalid input syntax for type uuid"):
		return fault.Wrap(fault.BadRequest, err, "Invalid project id")
	default:
		return fault.Wrap(fault.Internal, err, "Error "+doing+": "+msg)
	}
}
