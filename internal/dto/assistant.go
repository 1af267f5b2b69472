package dto

import "encoding/json"

// ChatbotRequest is a free-text question about the caller's finances
type ChatbotRequest struct {
	UserQuery string `json:"userQuery" validate:"required,not_blank,max=2000"`
}

// ChatbotResponse carries the model's answer
type ChatbotResponse struct {
	BotResponse string `json:"botResponse"`
}

// Chat completions wire format (OpenAI-compatible)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type ChatCompletionChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
}

// ChatCompletionErrorResponse is the error envelope returned with non-2xx statuses
type ChatCompletionErrorResponse struct {
	Error struct {
		Message string          `json:"message"`
		Type    string          `json:"type"`
		Code    json.RawMessage `json:"code"`
	} `json:"error"`
}
