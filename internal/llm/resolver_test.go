package llm

import (
	"errors"
	"testing"
)

func generator(name string) ModelInfo {
	return ModelInfo{Name: name, SupportedActions: []string{"generateContent", "countTokens"}}
}

func TestResolveModel_SkipsExperimentalEvenWhenItMatchesFirst(t *testing.T) {
	live := []ModelInfo{
		generator("gemini-2.0-flash-exp"),
		generator("gemini-2.5-flash"),
		generator("gemini-1.5-pro"),
	}
	got, err := ResolveModel(live, []string{"gemini-2.5-flash", "gemini-2.0-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "gemini-2.5-flash" {
		t.Fatalf("got %q, want gemini-2.5-flash", got)
	}
}

func TestResolveModel_StripsCatalogPrefix(t *testing.T) {
	live := []ModelInfo{generator("models/gemini-2.5-flash")}
	got, err := ResolveModel(live, PreferredModels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "gemini-2.5-flash" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveModel_PrefixAndSubstringMatch(t *testing.T) {
	live := []ModelInfo{generator("models/gemini-2.5-flash-002")}
	got, err := ResolveModel(live, []string{"gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "gemini-2.5-flash-002" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveModel_IgnoresModelsWithoutGenerateSupport(t *testing.T) {
	live := []ModelInfo{
		{Name: "models/gemini-2.5-flash", SupportedActions: []string{"embedContent"}},
		generator("models/gemini-1.5-pro"),
	}
	got, err := ResolveModel(live, []string{"gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No preference matches a usable model, so the first usable
	// non-experimental descriptor wins.
	if got != "gemini-1.5-pro" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveModel_FallsBackToFirstStableDescriptor(t *testing.T) {
	live := []ModelInfo{
		generator("gemini-exp-1206"),
		generator("gemini-1.5-flash-preview"),
		generator("gemini-1.0-pro"),
	}
	got, err := ResolveModel(live, []string{"gemini-3.0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "gemini-1.0-pro" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveModel_NoUsableModel(t *testing.T) {
	live := []ModelInfo{
		generator("gemini-exp-1206"),
		{Name: "models/text-embedding-004", SupportedActions: []string{"embedContent"}},
	}
	_, err := ResolveModel(live, PreferredModels)
	var num *NoUsableModelError
	if !errors.As(err, &num) {
		t.Fatalf("expected NoUsableModelError, got %v", err)
	}
	// Diagnostics carry the identifiers that were considered.
	if len(num.Considered) != 1 || num.Considered[0] != "gemini-exp-1206" {
		t.Fatalf("considered = %v", num.Considered)
	}
}

func TestResolveModel_EmptyCatalog(t *testing.T) {
	_, err := ResolveModel(nil, PreferredModels)
	if err == nil {
		t.Fatal("expected error for empty catalog")
	}
}
