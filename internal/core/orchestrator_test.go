// ABOUTME: Tests for the conversation orchestrator and its fallback paths
// ABOUTME: Includes the end-to-end ingest/retrieve/generate scenario
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/jacob/career-chatbot/internal/index"
	"github.com/jacob/career-chatbot/internal/models"
	"github.com/jacob/career-chatbot/internal/storage"
)

// keywordEmbedder maps text onto keyword-count dimensions. Deterministic
// and dimension-stable, which is all retrieval needs.
type keywordEmbedder struct {
	keywords []string
	err      error
}

func (e *keywordEmbedder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	if e.err != nil {
		return nil, e.err
	}
	lower := strings.ToLower(text)
	vec := make([]float64, len(e.keywords))
	for i, kw := range e.keywords {
		vec[i] = float64(strings.Count(lower, kw))
	}
	return vec, nil
}

// scriptedGenerator returns canned completions or errors in order.
type scriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	idx := g.calls
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if idx < len(g.errs) && g.errs[idx] != nil {
		return "", g.errs[idx]
	}
	if idx < len(g.responses) {
		return g.responses[idx], nil
	}
	return "default canned response", nil
}

type pipeline struct {
	orchestrator *Orchestrator
	generator    *scriptedGenerator
	ingestor     *Ingestor
}

func buildPipeline(t *testing.T, gen *scriptedGenerator) *pipeline {
	t.Helper()

	embedder := &keywordEmbedder{keywords: []string{"jenkins", "qt", "bosch", "harman", "adas", "automation"}}
	store := storage.NewMemoryStore()
	idx, err := index.New(index.NewMemoryBackend())
	if err != nil {
		t.Fatalf("index.New: %v", err)
	}

	chunker, err := NewChunker(200, 20)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	ingestor, err := NewIngestor(chunker, embedder, store, idx)
	if err != nil {
		t.Fatalf("NewIngestor: %v", err)
	}

	retriever, err := NewRetriever(embedder, idx, store, RetrieverConfig{TopK: 3})
	if err != nil {
		t.Fatalf("NewRetriever: %v", err)
	}
	assembler, err := NewPromptAssembler(6000)
	if err != nil {
		t.Fatalf("NewPromptAssembler: %v", err)
	}
	orch, err := NewOrchestrator(retriever, assembler, gen, models.DefaultPersona())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	return &pipeline{orchestrator: orch, generator: gen, ingestor: ingestor}
}

func ingestCareerDocs(t *testing.T, p *pipeline) {
	t.Helper()
	docs := []models.Document{
		{DocID: "doc_bosch", Label: "bosch.md", Text: "Bosch: ADAS engineer, Qt"},
		{DocID: "doc_harman", Label: "harman.md", Text: "Harman: test automation, Jenkins"},
	}
	if _, err := p.ingestor.IngestDocuments(context.Background(), docs); err != nil {
		t.Fatalf("IngestDocuments: %v", err)
	}
}

func TestEndToEndJenkinsQuestion(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Candidate used Jenkins at Harman."}}
	p := buildPipeline(t, gen)
	ingestCareerDocs(t, p)

	response, err := p.orchestrator.PostTurn(context.Background(), "s1", "Tell me about Jenkins experience")
	if err != nil {
		t.Fatalf("PostTurn: %v", err)
	}
	if response != "Candidate used Jenkins at Harman." {
		t.Errorf("response must pass through unmodified, got %q", response)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 generation call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Jenkins") {
		t.Errorf("assembled prompt must contain Jenkins:\n%s", prompt)
	}
	harmanPos := strings.Index(prompt, "Harman: test automation")
	boschPos := strings.Index(prompt, "Bosch: ADAS engineer")
	if harmanPos < 0 {
		t.Fatalf("Harman chunk missing from prompt:\n%s", prompt)
	}
	if boschPos >= 0 && boschPos < harmanPos {
		t.Errorf("Harman chunk must rank above Bosch for a Jenkins query:\n%s", prompt)
	}

	history := p.orchestrator.History("s1")
	if len(history) != 2 {
		t.Fatalf("expected exactly one user and one assistant turn, got %d", len(history))
	}
	if history[0].Role != models.RoleUser || history[0].Text != "Tell me about Jenkins experience" {
		t.Errorf("unexpected user turn: %+v", history[0])
	}
	if history[1].Role != models.RoleAssistant || history[1].Text != "Candidate used Jenkins at Harman." {
		t.Errorf("unexpected assistant turn: %+v", history[1])
	}
}

func TestPostTurnGenerationFailureFallsBack(t *testing.T) {
	gen := &scriptedGenerator{
		errs: []error{fmt.Errorf("%w: exhausted retries", models.ErrGenerationUnavailable)},
	}
	p := buildPipeline(t, gen)
	ingestCareerDocs(t, p)

	var events []TurnEvent
	p.orchestrator.SetEventHook(func(e TurnEvent) { events = append(events, e) })

	response, err := p.orchestrator.PostTurn(context.Background(), "s1", "Tell me about Qt")
	if err != nil {
		t.Fatalf("PostTurn must not surface per-turn errors: %v", err)
	}
	if response != FallbackMessage {
		t.Errorf("expected fallback message, got %q", response)
	}
	if got := p.orchestrator.History("s1"); len(got) != 0 {
		t.Errorf("failed turns must not enter history, got %d turns", len(got))
	}
	if len(events) != 1 || events[0].FinalState != StateFailed || events[0].Err == nil {
		t.Errorf("expected one failed event, got %+v", events)
	}

	// The session survives the failure.
	response, err = p.orchestrator.PostTurn(context.Background(), "s1", "Still there?")
	if err != nil {
		t.Fatalf("PostTurn after failure: %v", err)
	}
	if response == FallbackMessage {
		t.Errorf("expected recovery on the next turn, got fallback")
	}
	if got := p.orchestrator.History("s1"); len(got) != 2 {
		t.Errorf("expected 2 turns after recovery, got %d", len(got))
	}
}

func TestPostTurnRetrievalFailureFallsBack(t *testing.T) {
	gen := &scriptedGenerator{}
	embedder := &keywordEmbedder{err: fmt.Errorf("%w: upstream down", models.ErrGenerationUnavailable)}
	retriever, err := NewRetriever(embedder, mustIndex(t), storage.NewMemoryStore(), RetrieverConfig{TopK: 3})
	if err != nil {
		t.Fatalf("NewRetriever: %v", err)
	}
	assembler, err := NewPromptAssembler(6000)
	if err != nil {
		t.Fatalf("NewPromptAssembler: %v", err)
	}
	orch, err := NewOrchestrator(retriever, assembler, gen, models.DefaultPersona())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	response, err := orch.PostTurn(context.Background(), "s1", "hello")
	if err != nil {
		t.Fatalf("PostTurn: %v", err)
	}
	if response != FallbackMessage {
		t.Errorf("expected fallback message, got %q", response)
	}
	if gen.calls != 0 {
		t.Errorf("generator must not run when retrieval fails")
	}
}

func mustIndex(t *testing.T) *index.EmbeddingIndex {
	t.Helper()
	idx, err := index.New(index.NewMemoryBackend())
	if err != nil {
		t.Fatalf("index.New: %v", err)
	}
	return idx
}

func TestPostTurnEmptyCorpusStillResponds(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"I don't have information on that topic."}}
	p := buildPipeline(t, gen)

	response, err := p.orchestrator.PostTurn(context.Background(), "s1", "Do you know COBOL?")
	if err != nil {
		t.Fatalf("PostTurn: %v", err)
	}
	if response != "I don't have information on that topic." {
		t.Errorf("unexpected response: %q", response)
	}
	if !strings.Contains(gen.prompts[0], NoContextMarker) {
		t.Errorf("empty retrieval must render the no-context marker:\n%s", gen.prompts[0])
	}
}

func TestResetSessionClearsHistory(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Answer one about Bosch.", "Answer two about Harman."}}
	p := buildPipeline(t, gen)
	ingestCareerDocs(t, p)

	if _, err := p.orchestrator.PostTurn(context.Background(), "s1", "Tell me about Bosch"); err != nil {
		t.Fatalf("PostTurn: %v", err)
	}
	if len(p.orchestrator.History("s1")) != 2 {
		t.Fatalf("expected history before reset")
	}

	p.orchestrator.ResetSession("s1")
	if len(p.orchestrator.History("s1")) != 0 {
		t.Errorf("expected empty history after reset")
	}

	if _, err := p.orchestrator.PostTurn(context.Background(), "s1", "Tell me about Harman"); err != nil {
		t.Fatalf("PostTurn after reset: %v", err)
	}
	if len(p.orchestrator.History("s1")) != 2 {
		t.Errorf("expected fresh history after reset")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	gen := &scriptedGenerator{}
	p := buildPipeline(t, gen)
	ingestCareerDocs(t, p)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("session-%d", n)
			if _, err := p.orchestrator.PostTurn(context.Background(), sessionID, "Tell me about Jenkins"); err != nil {
				t.Errorf("PostTurn %s: %v", sessionID, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		sessionID := fmt.Sprintf("session-%d", i)
		if got := len(p.orchestrator.History(sessionID)); got != 2 {
			t.Errorf("%s: expected 2 turns, got %d", sessionID, got)
		}
	}
}

func TestPostTurnRejectsEmptyInput(t *testing.T) {
	gen := &scriptedGenerator{}
	p := buildPipeline(t, gen)

	if _, err := p.orchestrator.PostTurn(context.Background(), "s1", "   "); err == nil {
		t.Errorf("expected error for empty user text")
	}
}

func TestPostTurnEmbeddingMismatchPropagates(t *testing.T) {
	gen := &scriptedGenerator{}
	p := buildPipeline(t, gen)
	ingestCareerDocs(t, p)

	// A second orchestrator over the same index with a different-dimension
	// embedder simulates an embedding model swap.
	badEmbedder := &keywordEmbedder{keywords: []string{"jenkins"}}
	retriever, err := NewRetriever(badEmbedder, p.ingestor.idx, storage.NewMemoryStore(), RetrieverConfig{TopK: 3})
	if err != nil {
		t.Fatalf("NewRetriever: %v", err)
	}
	assembler, err := NewPromptAssembler(6000)
	if err != nil {
		t.Fatalf("NewPromptAssembler: %v", err)
	}
	orch, err := NewOrchestrator(retriever, assembler, gen, models.DefaultPersona())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	_, err = orch.PostTurn(context.Background(), "s1", "Tell me about Jenkins")
	if !errors.Is(err, models.ErrEmbeddingMismatch) {
		t.Fatalf("expected ErrEmbeddingMismatch to propagate, got %v", err)
	}
}
