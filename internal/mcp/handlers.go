// ABOUTME: MCP tool handler implementations for the chatbot server
// ABOUTME: Wraps the orchestrator and retriever with JSON tool responses
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jacob/career-chatbot/internal/core"
	"github.com/jacob/career-chatbot/internal/storage"
)

// DefaultSessionID is used when a caller does not track sessions.
const DefaultSessionID = "default"

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	orchestrator *core.Orchestrator
	retriever    *core.Retriever
	store        storage.Store
}

// AskCandidate handles the ask_candidate tool
func (h *Handlers) AskCandidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	sessionID := request.GetString("session_id", DefaultSessionID)

	answer, err := h.orchestrator.PostTurn(ctx, sessionID, question)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to process question: %v", err)), nil
	}

	response := map[string]interface{}{
		"answer":     answer,
		"session_id": sessionID,
		"turns":      len(h.orchestrator.History(sessionID)),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchExperience handles the search_experience tool
func (h *Handlers) SearchExperience(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 0)

	results, err := h.retriever.Retrieve(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("retrieval failed: %v", err)), nil
	}
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}

	type hit struct {
		ChunkID string  `json:"chunk_id"`
		DocID   string  `json:"doc_id"`
		Score   float64 `json:"score"`
		Text    string  `json:"text"`
	}
	hits := make([]hit, 0, len(results))
	for _, sc := range results {
		hits = append(hits, hit{
			ChunkID: sc.Chunk.ChunkID,
			DocID:   sc.Chunk.DocID,
			Score:   sc.Score,
			Text:    sc.Chunk.Text,
		})
	}

	response := map[string]interface{}{
		"query":   query,
		"results": hits,
		"count":   len(hits),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ResetSession handles the reset_session tool
func (h *Handlers) ResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	h.orchestrator.ResetSession(sessionID)

	response := map[string]interface{}{
		"session_id": sessionID,
		"reset":      true,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListDocuments handles the list_documents tool
func (h *Handlers) ListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := h.store.ListDocuments()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list documents: %v", err)), nil
	}

	type docInfo struct {
		DocID      string `json:"doc_id"`
		Label      string `json:"label"`
		Section    string `json:"section,omitempty"`
		Characters int    `json:"characters"`
	}
	infos := make([]docInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, docInfo{
			DocID:      doc.DocID,
			Label:      doc.Label,
			Section:    doc.Section,
			Characters: len([]rune(doc.Text)),
		})
	}

	response := map[string]interface{}{
		"documents": infos,
		"count":     len(infos),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
