package ai

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockQuizHonorsCountAndType(t *testing.T) {
	p := NewMockProvider()

	for _, questionType := range []string{TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer} {
		resp, err := p.GenerateQuiz(context.Background(), "some content", QuizOptions{
			QuestionCount: 4,
			Difficulty:    "easy",
			Type:          questionType,
		})
		require.NoError(t, err)
		require.Empty(t, resp.Error)

		var quiz Quiz
		require.NoError(t, json.Unmarshal([]byte(resp.Content), &quiz), "mock must emit valid JSON")
		require.Len(t, quiz.Questions, 4, "type %s", questionType)

		for _, q := range quiz.Questions {
			assert.Equal(t, questionType, q.Type)
			assert.NotEmpty(t, q.CorrectAnswer)
			assert.Equal(t, "easy", q.Difficulty)
			if questionType == TypeMultipleChoice {
				assert.Len(t, q.Options, 4)
			}
		}
	}
}

func TestMockQuizReportsUsage(t *testing.T) {
	p := NewMockProvider()
	resp, err := p.GenerateQuiz(context.Background(), "content", QuizOptions{QuestionCount: 1, Type: TypeTrueFalse, Difficulty: "medium"})
	require.NoError(t, err)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 100, resp.Usage.InputTokens)
	assert.Equal(t, 200, resp.Usage.OutputTokens)
	assert.InDelta(t, 0.001, resp.Usage.Cost, 1e-9)
}

func TestMockExplanationMentionsAnswers(t *testing.T) {
	p := NewMockProvider()

	resp, err := p.GenerateExplanation(context.Background(), "Q?", "wrong", "right", false)
	require.NoError(t, err)
	assert.Contains(t, resp.Content, `"right"`)
	assert.Contains(t, resp.Content, `"wrong"`)

	simple, err := p.GenerateExplanation(context.Background(), "Q?", "wrong", "right", true)
	require.NoError(t, err)
	assert.Contains(t, simple.Content, `"right"`)
	assert.NotContains(t, simple.Content, `"wrong"`)
}

func TestMockLearningPathIsJSON(t *testing.T) {
	p := NewMockProvider()
	resp, err := p.GenerateLearningPath(context.Background(), "learn Go", "4 weeks", "medium")
	require.NoError(t, err)

	var path map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resp.Content), &path))
	assert.Contains(t, path["title"], "learn Go")
}
