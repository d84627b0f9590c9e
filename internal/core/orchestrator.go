// ABOUTME: Orchestrator drives one conversation turn through retrieve/assemble/generate
// ABOUTME: Owns session history and the fallback path for per-turn failures
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jacob/career-chatbot/internal/models"
)

// FallbackMessage is returned for any per-turn failure. The user never
// sees a raw error.
const FallbackMessage = "I apologize, but I'm experiencing technical difficulties. Please try again later."

// TurnState tracks where a turn is in its lifecycle.
type TurnState int

const (
	StateIdle TurnState = iota
	StateRetrieving
	StateAssembling
	StateGenerating
	StateResponded
	StateFailed
)

// String returns the state name for logging.
func (s TurnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRetrieving:
		return "retrieving"
	case StateAssembling:
		return "assembling"
	case StateGenerating:
		return "generating"
	case StateResponded:
		return "responded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Generator produces a completion for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TurnEvent is handed to the observability hook after every turn.
type TurnEvent struct {
	SessionID      string
	FinalState     TurnState
	RetrievedCount int
	Latency        time.Duration
	Err            error
}

// sessionEntry serializes turns within one session. The mutex is held for
// the whole turn so history reads and the final append never race.
type sessionEntry struct {
	mu      sync.Mutex
	session *models.Session
}

// Orchestrator ties retrieval, assembly and generation together per turn.
// Sessions are independent; turns within a session run one at a time.
type Orchestrator struct {
	retriever *Retriever
	assembler *PromptAssembler
	generator Generator
	scrubber  *ResponseScrubber
	persona   models.Persona

	mu       sync.Mutex // guards sessions map
	sessions map[string]*sessionEntry

	hook func(TurnEvent)
}

// NewOrchestrator wires the pipeline components together.
func NewOrchestrator(retriever *Retriever, assembler *PromptAssembler, generator Generator, persona models.Persona) (*Orchestrator, error) {
	if retriever == nil || assembler == nil || generator == nil {
		return nil, fmt.Errorf("%w: orchestrator requires retriever, assembler and generator", models.ErrInvalidConfig)
	}
	return &Orchestrator{
		retriever: retriever,
		assembler: assembler,
		generator: generator,
		scrubber:  NewResponseScrubber(),
		persona:   persona,
		sessions:  make(map[string]*sessionEntry),
	}, nil
}

// SetEventHook registers the per-turn observability callback.
func (o *Orchestrator) SetEventHook(fn func(TurnEvent)) {
	o.hook = fn
}

func (o *Orchestrator) entry(sessionID string) *sessionEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	e, ok := o.sessions[sessionID]
	if !ok {
		e = &sessionEntry{session: models.NewSession(sessionID)}
		o.sessions[sessionID] = e
	}
	return e
}

// PostTurn processes one user message and returns the assistant response.
// Retrieval and generation failures resolve to the fallback message;
// configuration errors (embedding mismatch) propagate to the operator.
func (o *Orchestrator) PostTurn(ctx context.Context, sessionID, userText string) (string, error) {
	userTurn, err := models.NewTurn(models.RoleUser, userText)
	if err != nil {
		return "", fmt.Errorf("invalid user turn: %w", err)
	}

	e := o.entry(sessionID)
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	event := TurnEvent{SessionID: sessionID}
	defer func() {
		event.Latency = time.Since(start)
		if o.hook != nil {
			o.hook(event)
		}
	}()

	// Retrieving
	results, err := o.retriever.Retrieve(ctx, userText)
	if err != nil {
		event.FinalState = StateFailed
		event.Err = err
		if errors.Is(err, models.ErrEmbeddingMismatch) || errors.Is(err, models.ErrDimensionMismatch) {
			return "", err
		}
		return FallbackMessage, nil
	}
	event.RetrievedCount = len(results)

	// Assembling is local and cannot fail past construction.
	prompt := o.assembler.Assemble(o.persona, results, e.session.History(), userText)

	// Generating
	completion, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		event.FinalState = StateFailed
		event.Err = err
		return FallbackMessage, nil
	}

	response := o.scrubber.Scrub(completion)

	// Responded: record the turn pair, then back to idle.
	assistantTurn, err := models.NewTurn(models.RoleAssistant, response)
	if err != nil {
		event.FinalState = StateFailed
		event.Err = err
		return FallbackMessage, nil
	}
	e.session.Append(*userTurn, *assistantTurn)
	event.FinalState = StateResponded

	return response, nil
}

// History returns a copy of the session's turns, oldest first. Unknown
// sessions yield an empty history.
func (o *Orchestrator) History(sessionID string) []models.Turn {
	o.mu.Lock()
	e, ok := o.sessions[sessionID]
	o.mu.Unlock()
	if !ok {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.History()
}

// ResetSession discards a session's history. The next turn starts fresh.
func (o *Orchestrator) ResetSession(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.sessions, sessionID)
}
