// Package provider implements the inference gateway client.
package provider

import "context"

// InferenceProvider is the interface for chat-completion gateways. The
// gateway is one of only two collaborators an agent execution blocks on, so
// implementations must be safe for concurrent use by in-flight agent calls.
type InferenceProvider interface {
	// Chat sends a completion request and returns the response.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ChatRequest contains the parameters for a chat completion request.
type ChatRequest struct {
	TenantID    string
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse contains the response from a chat completion request.
type ChatResponse struct {
	Content string
	Usage   Usage
}

// Usage contains token usage information.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
