package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"buildflow/internal/api/handler"
	"buildflow/internal/api/server"
	"buildflow/internal/chat"
	"buildflow/internal/deploy"
	"buildflow/internal/diagram"
	"buildflow/internal/fault"
	"buildflow/internal/store"
)

const validProjectID = "0f2d9c11-58a3-4a86-b6cb-7f0f3f2a9d41"

type chatStore struct {
	project store.ProjectRow
	err     error
}

func (s *chatStore) Project(ctx context.Context, projectID string) (store.ProjectRow, error) {
	return s.project, s.err
}

func (s *chatStore) History(ctx context.Context, projectID string, limit int) ([]store.Message, error) {
	return nil, nil
}

func (s *chatStore) AppendExchange(ctx context.Context, projectID, userMsg, assistantMsg string) error {
	return nil
}

type model struct {
	text string
	err  error
}

func (m *model) ResolveModel(ctx context.Context) (string, error) { return "gemini-2.5-flash", nil }

func (m *model) Generate(ctx context.Context, name, prompt string) (string, error) {
	return m.text, m.err
}

func newTestRouter(cs chat.ProjectStore, m chat.ModelClient, ds deploy.MetadataStore) http.Handler {
	log := zap.NewNop()
	h := handler.New(
		chat.New(cs, m, log),
		deploy.New(ds, func(string) deploy.CloudAPI { return nil }, log),
		log,
	)
	return server.NewRouter(h, log)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := newTestRouter(nil, nil, nil)
	rec := doJSON(t, router, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestChat_Success(t *testing.T) {
	cs := &chatStore{project: store.ProjectRow{Diagram: diagram.Diagram{}}}
	m := &model{text: `{"message":"hi","operations":[{"op":"add_node","id":"n1"}]}`}
	router := newTestRouter(cs, m, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/chat",
		`{"projectId":"`+validProjectID+`","message":"add a node"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message    string           `json:"message"`
		Operations []map[string]any `json:"operations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hi", resp.Message)
	require.Len(t, resp.Operations, 1)
	assert.Equal(t, "add_node", resp.Operations[0]["op"])
}

func TestChat_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		store      chat.ProjectStore
		model      chat.ModelClient
		body       string
		wantStatus int
	}{
		{
			name:       "invalid json body",
			store:      &chatStore{},
			model:      &model{},
			body:       "{not json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing message field",
			store:      &chatStore{},
			model:      &model{},
			body:       `{"projectId":"` + validProjectID + `"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed project id",
			store:      &chatStore{},
			model:      &model{},
			body:       `{"projectId":"not-a-uuid","message":"hi"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store unconfigured",
			store:      nil,
			model:      &model{},
			body:       `{"projectId":"` + validProjectID + `","message":"hi"}`,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "provider unconfigured",
			store:      &chatStore{},
			model:      nil,
			body:       `{"projectId":"` + validProjectID + `","message":"hi"}`,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "project missing",
			store:      &chatStore{err: fault.New(fault.NotFound, "Project not found")},
			model:      &model{},
			body:       `{"projectId":"` + validProjectID + `","message":"hi"}`,
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(tc.store, tc.model, nil)
			rec := doJSON(t, router, http.MethodPost, "/api/chat", tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body struct {
				Detail string `json:"detail"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestDeployStatus_RouteParam(t *testing.T) {
	router := newTestRouter(nil, nil, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/deploy-status/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Valid id but unconfigured store degrades to 503.
	rec = doJSON(t, router, http.MethodGet, "/api/deploy-status/"+validProjectID, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDeploy_RequiresToken(t *testing.T) {
	router := newTestRouter(nil, nil, nil)
	rec := doJSON(t, router, http.MethodPost, "/api/deploy",
		`{"projectId":"`+validProjectID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSHeadersPresent(t *testing.T) {
	router := newTestRouter(nil, nil, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
