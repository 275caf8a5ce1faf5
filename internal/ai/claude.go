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

const (
	claudeBaseURL    = "https://api.anthropic.com/v1/messages"
	claudeModel      = "claude-3-sonnet-20240229"
	claudeAPIVersion = "2023-06-01"
)

// ClaudeProvider implements Provider against the Anthropic messages API,
// which uses its own auth header and response shape
type ClaudeProvider struct {
	apiKey string
	client *http.Client
	rate   costRate
}

func NewClaudeProvider(apiKey string) *ClaudeProvider {
	return &ClaudeProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: 90 * time.Second},
		rate:   costRate{input: 0.003, output: 0.015},
	}
}

func (p *ClaudeProvider) Name() string {
	return "claude"
}

type claudeRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (p *ClaudeProvider) GenerateQuiz(ctx context.Context, content string, options QuizOptions) (*Response, error) {
	return p.sendRequest(ctx, buildQuizPrompt(content, options), "Quiz")
}

func (p *ClaudeProvider) GenerateExplanation(ctx context.Context, question, userAnswer, correctAnswer string, simple bool) (*Response, error) {
	return p.sendRequest(ctx, buildExplanationPrompt(question, userAnswer, correctAnswer, simple), "Explanation")
}

func (p *ClaudeProvider) SummarizeContent(ctx context.Context, content string) (*Response, error) {
	return p.sendRequest(ctx, buildSummaryPrompt(content), "Summary")
}

func (p *ClaudeProvider) GenerateLearningPath(ctx context.Context, goal, timeframe, difficulty string) (*Response, error) {
	return p.sendRequest(ctx, buildLearningPathPrompt(goal, timeframe, difficulty), "LearningPath")
}

func (p *ClaudeProvider) sendRequest(ctx context.Context, prompt, operation string) (*Response, error) {
	log.Printf("[claude.%s] Sending request, prompt length: %d", operation, len(prompt))

	reqBody := claudeRequest{
		Model:     claudeModel,
		MaxTokens: 2000,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeBaseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[claude.%s] Response status: %d", operation, resp.StatusCode)

	if resp.StatusCode != 200 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error: %d %s", resp.StatusCode, string(bodyBytes))
	}

	var claudeResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&claudeResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(claudeResp.Content) == 0 {
		return nil, fmt.Errorf("no content returned")
	}

	content := strings.TrimSpace(claudeResp.Content[0].Text)
	log.Printf("[claude.%s] Success, response length: %d", operation, len(content))

	return &Response{
		Content: content,
		Usage: &Usage{
			InputTokens:  claudeResp.Usage.InputTokens,
			OutputTokens: claudeResp.Usage.OutputTokens,
			Cost:         p.rate.calculate(claudeResp.Usage.InputTokens, claudeResp.Usage.OutputTokens),
		},
	}, nil
}
