package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"buildflow/internal/diagram"
)

// HistoryMessage is one prior exchange line rendered into the prompt.
type HistoryMessage struct {
	Role    string
	Content string
}

const emptyHistoryPlaceholder = "No previous messages."

const persona = `You are ArchCoach, an AI assistant that edits a system design diagram.
The diagram is a JSON document with "nodes" and "edges". The user sends an
instruction; you answer with a short message and a list of edit operations
that the editor applies to the diagram.`

const responseContract = `Respond with a single JSON object and nothing else:
{"message": string, "operations": Operation[]}
- "message" is a short, friendly summary of what you changed or why you
  changed nothing.
- "operations" is the list of edits (possibly empty).
Do not wrap the JSON in markdown fences. Do not add text before or after it.`

const layoutRules = `When placing new nodes, keep the layout readable:
- Arrange nodes on a grid: 250 horizontal spacing, 150 vertical spacing.
- Place entry points (users, frontends, gateways) in the top layer at y=0
  and each downstream dependency layer 200 further down.
- Spread siblings within a layer 250 apart horizontally, centered on their
  parent.
- Place a new node next to the nodes it connects to, not at (0,0).`

const operationShapes = `Each operation has an "op" field and the payload fields for that op:
- add_node: {"op":"add_node","id":string,"type":catalog id,"position":{"x":number,"y":number},"data":{"name":string,"description":string,"attributes":object}}
- update_node: {"op":"update_node","id":string,"data":{"name":string,"description":string,"attributes":object}}
- delete_node: {"op":"delete_node","id":string}
- add_edge: {"op":"add_edge","source":node id,"target":node id,"type":string (optional)}
  source and target must reference existing node ids or ids introduced by an
  earlier add_node in the same list.
- delete_edge: {"op":"delete_edge","id":string}`

// BuildPrompt renders the full instruction block for one chat turn. The
// diagram is serialized whole; there is no truncation regardless of size.
func BuildPrompt(d diagram.Diagram, history []HistoryMessage, userMessage string) string {
	var buf bytes.Buffer
	writeSection(&buf, "ROLE", persona)
	writeSection(&buf, "RESPONSE_FORMAT", responseContract)
	writeSection(&buf, "LAYOUT", layoutRules)
	writeSection(&buf, "NODE_TYPES", formatNodeTypes())
	writeSection(&buf, "OPERATIONS", operationShapes)
	writeSection(&buf, "CURRENT_DIAGRAM", formatDiagram(d))
	writeSection(&buf, "RECENT_CHAT", formatHistory(history))
	writeSection(&buf, "USER", userMessage)
	return strings.TrimSpace(buf.String()) + "\n"
}

func writeSection(buf *bytes.Buffer, name, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	fmt.Fprintf(buf, "[%s]\n%s\n\n", name, strings.TrimSpace(body))
}

func formatNodeTypes() string {
	var b strings.Builder
	for _, t := range diagram.NodeTypes {
		fmt.Fprintf(&b, "- %s (%s): %s", t.ID, t.Label, t.Description)
		if len(t.UseCases) > 0 {
			fmt.Fprintf(&b, " Examples: %s.", strings.Join(t.UseCases, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatDiagram(d diagram.Diagram) string {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func formatHistory(history []HistoryMessage) string {
	if len(history) == 0 {
		return emptyHistoryPlaceholder
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, strings.ToUpper(m.Role)+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}
