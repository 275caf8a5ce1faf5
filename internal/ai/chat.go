package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// chatConfig describes one OpenAI-compatible backend
type chatConfig struct {
	Name      string
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	// JSONMode asks the backend for a json_object response format
	JSONMode bool
	// FoldSystem prepends the system prompt to the user message for backends
	// that reject a separate system role
	FoldSystem bool
	Rate       costRate
}

// ChatProvider implements Provider against any OpenAI-compatible
// chat-completions endpoint
type ChatProvider struct {
	config chatConfig
	client *http.Client
}

func newChatProvider(config chatConfig) *ChatProvider {
	return &ChatProvider{
		config: config,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

// NewOpenAIProvider talks to the OpenAI chat-completions API
func NewOpenAIProvider(apiKey string) *ChatProvider {
	return newChatProvider(chatConfig{
		Name:      "openai",
		BaseURL:   "https://api.openai.com/v1/chat/completions",
		APIKey:    apiKey,
		Model:     "gpt-3.5-turbo",
		MaxTokens: 3000,
		JSONMode:  true,
		Rate:      costRate{input: 0.001, output: 0.002},
	})
}

// NewAIMLAPIProvider talks to the SamuraiAPI aggregator. It rejects a
// separate system message, so the system prompt is folded into the user turn.
func NewAIMLAPIProvider(apiKey string) *ChatProvider {
	return newChatProvider(chatConfig{
		Name:       "aimlapi",
		BaseURL:    "https://samuraiapi.in/v1/chat/completions",
		APIKey:     apiKey,
		Model:      "gpt-4o",
		MaxTokens:  2000,
		FoldSystem: true,
		Rate:       costRate{input: 0.001, output: 0.002},
	})
}

func (p *ChatProvider) Name() string {
	return p.config.Name
}

func (p *ChatProvider) GenerateQuiz(ctx context.Context, content string, options QuizOptions) (*Response, error) {
	return p.sendRequest(ctx, buildQuizPrompt(content, options), "Quiz")
}

func (p *ChatProvider) GenerateExplanation(ctx context.Context, question, userAnswer, correctAnswer string, simple bool) (*Response, error) {
	return p.sendRequest(ctx, buildExplanationPrompt(question, userAnswer, correctAnswer, simple), "Explanation")
}

func (p *ChatProvider) SummarizeContent(ctx context.Context, content string) (*Response, error) {
	return p.sendRequest(ctx, buildSummaryPrompt(content), "Summary")
}

func (p *ChatProvider) GenerateLearningPath(ctx context.Context, goal, timeframe, difficulty string) (*Response, error) {
	return p.sendRequest(ctx, buildLearningPathPrompt(goal, timeframe, difficulty), "LearningPath")
}

// sendRequest handles HTTP requests to the backend
func (p *ChatProvider) sendRequest(ctx context.Context, prompt, operation string) (*Response, error) {
	log.Printf("[%s.%s] Sending request, prompt length: %d", p.config.Name, operation, len(prompt))

	var messages []chatMessage
	if p.config.FoldSystem {
		messages = []chatMessage{
			{Role: "user", Content: systemPrompt + "\n\n" + prompt},
		}
	} else {
		messages = []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		}
	}

	reqBody := chatRequest{
		Model:       p.config.Model,
		Messages:    messages,
		MaxTokens:   p.config.MaxTokens,
		Temperature: 0.7,
	}
	if p.config.JSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[%s.%s] Response status: %d", p.config.Name, operation, resp.StatusCode)

	if resp.StatusCode != 200 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error: %d %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	log.Printf("[%s.%s] Success, response length: %d", p.config.Name, operation, len(content))

	return &Response{
		Content: content,
		Usage: &Usage{
			InputTokens:  chatResp.Usage.PromptTokens,
			OutputTokens: chatResp.Usage.CompletionTokens,
			Cost:         p.config.Rate.calculate(chatResp.Usage.PromptTokens, chatResp.Usage.CompletionTokens),
		},
	}, nil
}
