package ai

import "context"

// Response is the normalized result of a provider call. Error carries a
// provider-reported failure that is returned to the caller as-is; transport
// and protocol failures surface as Go errors and trigger fallback instead.
type Response struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
	Usage   *Usage `json:"usage,omitempty"`
}

// Usage is token accounting plus estimated cost in USD
type Usage struct {
	InputTokens  int     `json:"inputTokens"`
	OutputTokens int     `json:"outputTokens"`
	Cost         float64 `json:"cost"`
}

// QuizOptions controls quiz generation
type QuizOptions struct {
	QuestionCount       int      `json:"questionCount"`
	Difficulty          string   `json:"difficulty"`
	Type                string   `json:"type"`
	Topics              []string `json:"topics,omitempty"`
	TimeLimit           int      `json:"timeLimit,omitempty"`
	IncludeExplanations bool     `json:"includeExplanations,omitempty"`
}

// Question types accepted in QuizOptions.Type
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
	TypeShortAnswer    = "short_answer"
)

// Provider is a single AI backend exposing the four generation capabilities
type Provider interface {
	Name() string
	GenerateQuiz(ctx context.Context, content string, options QuizOptions) (*Response, error)
	GenerateExplanation(ctx context.Context, question, userAnswer, correctAnswer string, simple bool) (*Response, error)
	SummarizeContent(ctx context.Context, content string) (*Response, error)
	GenerateLearningPath(ctx context.Context, goal, timeframe, difficulty string) (*Response, error)
}

// costRate is per-1K-token pricing used for usage estimates
type costRate struct {
	input  float64
	output float64
}

func (r costRate) calculate(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)/1000*r.input + float64(outputTokens)/1000*r.output
}
