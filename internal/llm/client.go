// ABOUTME: OpenAI-compatible client for embeddings and chat generation
// ABOUTME: Retries transient failures with exponential backoff, fails fast on client errors
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jacob/career-chatbot/internal/models"
	"github.com/jacob/career-chatbot/internal/util"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// GenerationOptions controls a single chat completion request.
type GenerationOptions struct {
	Temperature   float32
	MaxTokens     int
	StopSequences []string
}

// Message is one entry of the prompt sent to the model.
type Message struct {
	Role    string
	Content string
}

// Prompt message roles.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// CallRecord describes one completed API call, successful or not.
type CallRecord struct {
	Operation string
	Attempts  int
	Duration  time.Duration
	Err       error
}

// ChatAPI is the subset of the OpenAI client the Client depends on.
// Tests substitute a stub here.
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// ClientConfig holds configuration for the generation client
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	MaxRetries     int
	RetryDelay     time.Duration
	Timeout        time.Duration
}

// DefaultClientConfig returns the default client configuration
func DefaultClientConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
		Timeout:        30 * time.Second,
	}
}

// Client wraps the OpenAI API with retry logic and error classification.
type Client struct {
	api            ChatAPI
	chatModel      string
	embeddingModel openai.EmbeddingModel
	maxRetries     int
	retryDelay     time.Duration
	timeout        time.Duration
	observer       func(CallRecord)
}

// NewClient creates a client from config. The BaseURL override supports
// OpenAI-compatible providers like the HuggingFace router.
func NewClient(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: API key is required", models.ErrInvalidConfig)
	}
	if config.MaxRetries < 0 {
		return nil, fmt.Errorf("%w: max retries must be >= 0", models.ErrInvalidConfig)
	}

	cc := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cc.BaseURL = config.BaseURL
	}

	chatModel := config.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := config.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		api:            openai.NewClientWithConfig(cc),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
		timeout:        timeout,
	}, nil
}

// NewClientWithAPI creates a client over a custom API implementation (for testing).
func NewClientWithAPI(api ChatAPI, config *ClientConfig) *Client {
	c := &Client{
		api:            api,
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
		timeout:        config.Timeout,
	}
	if c.chatModel == "" {
		c.chatModel = DefaultChatModel
	}
	if c.embeddingModel == "" {
		c.embeddingModel = DefaultEmbeddingModel
	}
	if c.timeout <= 0 {
		c.timeout = 30 * time.Second
	}
	return c
}

// SetObserver registers a hook invoked after every API call sequence.
func (c *Client) SetObserver(fn func(CallRecord)) {
	c.observer = fn
}

func (c *Client) record(op string, attempts int, start time.Time, err error) {
	if c.observer != nil {
		c.observer(CallRecord{
			Operation: op,
			Attempts:  attempts,
			Duration:  time.Since(start),
			Err:       err,
		})
	}
}

// EmbedText generates an embedding vector for the given text.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float64, error) {
	start := time.Now()
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				break
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateEmbeddings(attemptCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			if !isRetryable(err) {
				wrapped := fmt.Errorf("%w: embedding request rejected: %v", models.ErrGenerationClient, err)
				c.record("embed", attempt+1, start, wrapped)
				return nil, wrapped
			}
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		// Convert []float32 to []float64
		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}

		c.record("embed", attempt+1, start, nil)
		return embedding64, nil
	}

	wrapped := fmt.Errorf("%w: embedding failed after %d attempts: %v",
		models.ErrGenerationUnavailable, c.maxRetries+1, lastErr)
	c.record("embed", c.maxRetries+1, start, wrapped)
	return nil, wrapped
}

// Generate runs a chat completion over the assembled prompt messages.
func (c *Client) Generate(ctx context.Context, messages []Message, opts GenerationOptions) (string, error) {
	start := time.Now()

	chatMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		chatMessages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    chatMessages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Stop:        opts.StopSequences,
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				break
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateChatCompletion(attemptCtx, req)
		cancel()

		if err != nil {
			if !isRetryable(err) {
				wrapped := fmt.Errorf("%w: completion request rejected: %v", models.ErrGenerationClient, err)
				c.record("generate", attempt+1, start, wrapped)
				return "", wrapped
			}
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		c.record("generate", attempt+1, start, nil)
		return resp.Choices[0].Message.Content, nil
	}

	wrapped := fmt.Errorf("%w: completion failed after %d attempts: %v",
		models.ErrGenerationUnavailable, c.maxRetries+1, lastErr)
	c.record("generate", c.maxRetries+1, start, wrapped)
	return "", wrapped
}

// isRetryable classifies API errors. Rate limits, server errors, timeouts
// and transport failures are transient; other HTTP 4xx responses are not.
func isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500 {
			return true
		}
		if apiErr.HTTPStatusCode >= 400 {
			return false
		}
		return true
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500 {
			return true
		}
		if reqErr.HTTPStatusCode >= 400 {
			return false
		}
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Unclassified errors (connection resets and the like) get retried.
	return true
}

// sleepCtx waits for the backoff delay unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
