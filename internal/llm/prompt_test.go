package llm

import (
	"strings"
	"testing"

	"buildflow/internal/diagram"
)

func TestBuildPrompt_SectionOrder(t *testing.T) {
	d := diagram.Diagram{
		Nodes: []diagram.Node{{ID: "n1", Type: "web-server", Data: diagram.NodeData{Name: "frontend"}}},
	}
	out := BuildPrompt(d, nil, "add a database")

	sections := []string{
		"[ROLE]",
		"[RESPONSE_FORMAT]",
		"[LAYOUT]",
		"[NODE_TYPES]",
		"[OPERATIONS]",
		"[CURRENT_DIAGRAM]",
		"[RECENT_CHAT]",
		"[USER]",
	}
	last := -1
	for _, sec := range sections {
		i := strings.Index(out, sec)
		if i < 0 {
			t.Fatalf("missing section %s", sec)
		}
		if i < last {
			t.Fatalf("section %s out of order", sec)
		}
		last = i
	}
}

func TestBuildPrompt_EmptyHistoryPlaceholder(t *testing.T) {
	out := BuildPrompt(diagram.Diagram{}, nil, "hello")
	if !strings.Contains(out, "No previous messages.") {
		t.Fatal("expected empty-history placeholder")
	}
}

func TestBuildPrompt_HistoryRendering(t *testing.T) {
	history := []HistoryMessage{
		{Role: "user", Content: "add a cache"},
		{Role: "assistant", Content: "Added a cache node."},
	}
	out := BuildPrompt(diagram.Diagram{}, history, "now connect it")
	if !strings.Contains(out, "USER: add a cache") {
		t.Fatal("missing rendered user line")
	}
	if !strings.Contains(out, "ASSISTANT: Added a cache node.") {
		t.Fatal("missing rendered assistant line")
	}
	if strings.Contains(out, "No previous messages.") {
		t.Fatal("placeholder should not appear with history present")
	}
}

func TestBuildPrompt_ContainsDiagramAndUserMessage(t *testing.T) {
	d := diagram.Diagram{
		Nodes: []diagram.Node{{ID: "api-1", Type: "rest-api", Data: diagram.NodeData{Name: "Orders API"}}},
		Edges: []diagram.Edge{{ID: "e1", Source: "api-1", Target: "db-1"}},
	}
	out := BuildPrompt(d, nil, "rename the api")
	if !strings.Contains(out, `"Orders API"`) {
		t.Fatal("diagram not serialized into prompt")
	}
	if !strings.Contains(out, "rename the api") {
		t.Fatal("user message missing")
	}
}

func TestBuildPrompt_EnumeratesNodeTypeCatalog(t *testing.T) {
	out := BuildPrompt(diagram.Diagram{}, nil, "x")
	for _, typ := range diagram.NodeTypes {
		if !strings.Contains(out, "- "+typ.ID+" (") {
			t.Fatalf("catalog entry %s missing from prompt", typ.ID)
		}
	}
}
