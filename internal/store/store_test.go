package store

import (
	"encoding/json"
	"errors"
	"testing"

	"buildflow/internal/fault"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want fault.Kind
	}{
		{"postgrest no-rows code", errors.New(`(PGRST116) JSON object requested, multiple (or no) rows returned`), fault.NotFound},
		{"no rows text", errors.New("sql: no rows in result set"), fault.NotFound},
		{"not found text", errors.New("relation Not Found"), fault.NotFound},
		{"uuid syntax", errors.New(`(22P02) invalid input syntax for type uuid: "abc"`), fault.BadRequest},
		{"anything else", errors.New("connection refused"), fault.Internal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err, "loading project")
			if got.Kind != tc.want {
				t.Fatalf("kind = %v, want %v", got.Kind, tc.want)
			}
			if !errors.Is(got, tc.err) {
				t.Fatal("cause must stay reachable through Unwrap")
			}
		})
	}
}

func TestProjectRowDecoding(t *testing.T) {
	raw := []byte(`{
		"diagram_json": {
			"nodes": [{"id":"n1","type":"database","position":{"x":10,"y":20},"data":{"name":"db"}}],
			"edges": [{"id":"e1","source":"n1","target":"n2"}]
		},
		"name": "Shop"
	}`)
	var row ProjectRow
	if err := json.Unmarshal(raw, &row); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if row.Name != "Shop" {
		t.Fatalf("name = %q", row.Name)
	}
	if len(row.Diagram.Nodes) != 1 || row.Diagram.Nodes[0].Position.X != 10 {
		t.Fatalf("nodes = %+v", row.Diagram.Nodes)
	}
	if len(row.Diagram.Edges) != 1 || row.Diagram.Edges[0].Target != "n2" {
		t.Fatalf("edges = %+v", row.Diagram.Edges)
	}
}

func TestNewRequiresReachableURL(t *testing.T) {
	if _, err := New("https://example.supabase.co", "service-key"); err != nil {
		t.Fatalf("valid config must construct: %v", err)
	}
}
