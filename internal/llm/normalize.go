package llm

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"buildflow/internal/diagram"
)

// Result is the structured reply recovered from raw model output. Operations
// is never nil and Message is never empty.
type Result struct {
	Message    string              `json:"message"`
	Operations []diagram.Operation `json:"operations"`
}

const (
	defaultAckMessage  = "Done. Let me know if you want any other changes."
	legacyArrayMessage = "I've updated your diagram."
)

var (
	// A reply wrapped in a single fenced code block, with or without a
	// language tag. The capture group is the interior.
	reFencedBlock = regexp.MustCompile("(?s)^\\s*```[a-zA-Z0-9]*[ \\t]*\\r?\\n?(.*?)\\r?\\n?[ \\t]*```\\s*$")

	// Balanced-brace substrings, tolerating one level of nested braces.
	// Not a parser; deeper nesting splits into smaller candidates.
	reBraceBlock = regexp.MustCompile(`\{(?:[^{}]|\{[^{}]*\})*\}`)
)

// Normalize recovers a (message, operations) pair from raw model output.
// It never fails: each stage targets one observed misbehavior, ordered from
// well-behaved to pathological, and the last stage is unconditional.
func Normalize(raw string) Result {
	text := stripFence(raw)

	// Slice from the first '{' to the last '}' when the brace counts
	// balance; prose around the JSON falls away.
	candidate := text
	if i := strings.Index(text, "{"); i >= 0 {
		if j := strings.LastIndex(text, "}"); j > i {
			sub := text[i : j+1]
			if strings.Count(sub, "{") == strings.Count(sub, "}") {
				candidate = sub
			}
		}
	}

	if res, ok := decodeEnvelope(candidate); ok {
		return res
	}

	// The strict candidate did not decode: scan the raw text for every
	// balanced-brace substring, longest first, and take the first one that
	// looks like a reply envelope.
	blocks := reBraceBlock.FindAllString(raw, -1)
	sort.SliceStable(blocks, func(i, j int) bool { return len(blocks[i]) > len(blocks[j]) })
	for _, block := range blocks {
		if res, ok := decodeEnvelope(block); ok {
			return res
		}
	}

	// Legacy shape: a bare JSON array of operations with no envelope.
	var legacy []diagram.Operation
	if err := json.Unmarshal([]byte(raw), &legacy); err == nil {
		if legacy == nil {
			legacy = []diagram.Operation{}
		}
		return Result{Message: legacyArrayMessage, Operations: legacy}
	}

	return Result{
		Message:    "I'm sorry, I couldn't turn that response into diagram edits (" + excerpt(raw) + "). Please try rephrasing your request.",
		Operations: []diagram.Operation{},
	}
}

// stripFence removes a single wrapping fenced code block, if present.
func stripFence(s string) string {
	if m := reFencedBlock.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// decodeEnvelope decodes candidate as a reply object. Objects carrying
// neither "message" nor "operations" are rejected: that keeps the brace
// extraction from latching onto an unrelated object, such as the payload of
// a bare legacy operations array.
func decodeEnvelope(candidate string) (Result, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return Result{}, false
	}
	_, hasMessage := obj["message"]
	_, hasOperations := obj["operations"]
	if !hasMessage && !hasOperations {
		return Result{}, false
	}

	message := defaultAckMessage
	if s, ok := obj["message"].(string); ok && strings.TrimSpace(s) != "" {
		message = s
	}

	// Anything that is not a list coerces to an empty list; element shapes
	// are the frontend's problem.
	operations := []diagram.Operation{}
	if arr, ok := obj["operations"].([]any); ok {
		for _, el := range arr {
			if m, ok := el.(map[string]any); ok {
				operations = append(operations, m)
			}
		}
	}
	return Result{Message: message, Operations: operations}, true
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
