package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// MockProvider is the last-resort backend. It needs no credentials and never
// fails, so generation endpoints keep working when every real provider is
// down or unconfigured.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return "mock"
}

// GenerateQuiz synthesizes exactly options.QuestionCount questions of the
// requested type
func (p *MockProvider) GenerateQuiz(ctx context.Context, content string, options QuizOptions) (*Response, error) {
	log.Printf("[mock.Quiz] Generating %d %s questions", options.QuestionCount, options.Type)

	timeLimit := options.TimeLimit
	if timeLimit == 0 {
		timeLimit = defaultTimeLimit
	}

	questions := make([]Question, 0, options.QuestionCount)
	for i := 1; i <= options.QuestionCount; i++ {
		questions = append(questions, p.mockQuestion(i, options.Type, options.Difficulty, timeLimit))
	}

	quiz := Quiz{
		Title:         "Sample Quiz",
		Description:   "A sample quiz generated for testing purposes",
		Category:      "General",
		Difficulty:    options.Difficulty,
		EstimatedTime: float64(options.QuestionCount*timeLimit) / 60,
		Questions:     questions,
	}

	payload, err := json.Marshal(quiz)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mock quiz: %w", err)
	}

	return &Response{
		Content: string(payload),
		Usage: &Usage{
			InputTokens:  100,
			OutputTokens: 200,
			Cost:         0.001,
		},
	}, nil
}

func (p *MockProvider) mockQuestion(n int, questionType, difficulty string, timeLimit int) Question {
	q := Question{
		ID:          fmt.Sprintf("q%d", n),
		Type:        questionType,
		Difficulty:  difficulty,
		Topic:       "General",
		TimeLimit:   timeLimit,
		Explanation: "This is a sample explanation for testing purposes.",
		Hints:       []string{"Think about the main theme", "Consider the key concepts"},
	}

	switch questionType {
	case TypeTrueFalse:
		q.Question = fmt.Sprintf("Sample statement %d about the provided content is accurate.", n)
		q.CorrectAnswer = "True"
	case TypeShortAnswer:
		q.Question = fmt.Sprintf("What is key concept %d of the provided content?", n)
		q.CorrectAnswer = "Concept"
	default:
		q.Question = fmt.Sprintf("What is the main topic of section %d of the provided content?", n)
		q.Options = []string{"Option A", "Option B", "Option C", "Option D"}
		q.CorrectAnswer = "Option A"
	}
	return q
}

func (p *MockProvider) GenerateExplanation(ctx context.Context, question, userAnswer, correctAnswer string, simple bool) (*Response, error) {
	explanation := fmt.Sprintf(
		"The correct answer is %q rather than %q because this is a sample explanation for testing purposes. In a real scenario, this would provide detailed reasoning.",
		correctAnswer, userAnswer)
	if simple {
		explanation = fmt.Sprintf("The correct answer is %q because it's the right choice for this question.", correctAnswer)
	}
	return &Response{Content: explanation}, nil
}

func (p *MockProvider) SummarizeContent(ctx context.Context, content string) (*Response, error) {
	return &Response{
		Content: "This is a sample summary of the provided content. Key points include the main concepts and important information that would be relevant for quiz creation.",
	}, nil
}

func (p *MockProvider) GenerateLearningPath(ctx context.Context, goal, timeframe, difficulty string) (*Response, error) {
	path := map[string]interface{}{
		"title":       "Learning Path: " + goal,
		"description": "A structured learning path to achieve: " + goal,
		"topics":      []string{"Introduction", "Fundamentals", "Advanced Concepts", "Practice"},
		"schedule":    fmt.Sprintf("Complete within %s at %s difficulty level", timeframe, difficulty),
		"milestones":  []string{"Week 1: Basics", "Week 2: Practice", "Week 3: Advanced"},
	}
	payload, err := json.Marshal(path)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mock path: %w", err)
	}
	return &Response{Content: string(payload)}, nil
}
