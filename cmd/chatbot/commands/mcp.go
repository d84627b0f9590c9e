// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes the chatbot to LLM agents over stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/jacob/career-chatbot/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the chatbot as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to ask the candidate questions via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  chatbot mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "career-chatbot": {
  #       "command": "chatbot",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}
	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" && os.Getenv("HUGGINGFACE_API_TOKEN") == "" {
		log.Println("Warning: no API key set - retrieval and generation will not work")
	}

	a, err := newApp()
	if err != nil {
		return fmt.Errorf("failed to initialize chatbot: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"Career Chatbot",
		"0.1.0",
	)
	mcp.RegisterTools(server, a.orchestrator, a.retriever, a.store)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Career chatbot MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
		a.Close()
		if !quiet {
			log.Println("Shutdown complete")
		}
	case err := <-serverErr:
		a.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
