// ABOUTME: MCP tool definitions and registration for the chatbot server
// ABOUTME: Defines JSON schemas for the 4 exposed tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jacob/career-chatbot/internal/core"
	"github.com/jacob/career-chatbot/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, orchestrator *core.Orchestrator, retriever *core.Retriever, store storage.Store) *Handlers {
	handlers := &Handlers{
		orchestrator: orchestrator,
		retriever:    retriever,
		store:        store,
	}

	// 1. ask_candidate - Ask the candidate chatbot a question
	server.AddTool(mcp.Tool{
		Name:        "ask_candidate",
		Description: "Ask the candidate a question about their experience, skills or background. Answers are grounded in the ingested career documents.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to ask the candidate",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id for multi-turn conversations (default: 'default')",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskCandidate)

	// 2. search_experience - Raw retrieval over the career corpus
	server.AddTool(mcp.Tool{
		Name:        "search_experience",
		Description: "Search the candidate's career documents directly and return the matching excerpts with similarity scores, without generating an answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query over the career corpus",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of excerpts to return (default: all retrieved)",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchExperience)

	// 3. reset_session - Clear a conversation session
	server.AddTool(mcp.Tool{
		Name:        "reset_session",
		Description: "Discard the conversation history of a session. The next question starts fresh.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id to reset",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.ResetSession)

	// 4. list_documents - Show the ingested corpus
	server.AddTool(mcp.Tool{
		Name:        "list_documents",
		Description: "List the ingested career documents with their labels and sizes.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListDocuments)

	return handlers
}
