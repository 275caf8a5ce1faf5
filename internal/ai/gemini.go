package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

const geminiModel = "gemini-pro"

// GeminiProvider implements Provider on the official Gemini SDK
type GeminiProvider struct {
	client *genai.Client
	rate   costRate
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{
		client: client,
		rate:   costRate{input: 0.0005, output: 0.0015},
	}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) GenerateQuiz(ctx context.Context, content string, options QuizOptions) (*Response, error) {
	return p.generate(ctx, buildQuizPrompt(content, options), "Quiz")
}

func (p *GeminiProvider) GenerateExplanation(ctx context.Context, question, userAnswer, correctAnswer string, simple bool) (*Response, error) {
	return p.generate(ctx, buildExplanationPrompt(question, userAnswer, correctAnswer, simple), "Explanation")
}

func (p *GeminiProvider) SummarizeContent(ctx context.Context, content string) (*Response, error) {
	return p.generate(ctx, buildSummaryPrompt(content), "Summary")
}

func (p *GeminiProvider) GenerateLearningPath(ctx context.Context, goal, timeframe, difficulty string) (*Response, error) {
	return p.generate(ctx, buildLearningPathPrompt(goal, timeframe, difficulty), "LearningPath")
}

func (p *GeminiProvider) generate(ctx context.Context, prompt, operation string) (*Response, error) {
	log.Printf("[gemini.%s] Sending request, prompt length: %d", operation, len(prompt))

	resp, err := p.client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 2000,
	})
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	content := strings.TrimSpace(resp.Text())
	if content == "" {
		return nil, fmt.Errorf("no content returned")
	}

	var inputTokens, outputTokens int
	if resp.UsageMetadata != nil {
		inputTokens = int(resp.UsageMetadata.PromptTokenCount)
		outputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	log.Printf("[gemini.%s] Success, response length: %d", operation, len(content))

	return &Response{
		Content: content,
		Usage: &Usage{
			InputTokens:  inputTokens,
			OutputTokens: outputTokens,
			Cost:         p.rate.calculate(inputTokens, outputTokens),
		},
	}, nil
}
