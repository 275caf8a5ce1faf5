package ai

import (
	"fmt"
	"strings"
)

// systemPrompt frames every chat-style request
const systemPrompt = "You are an expert educational content creator. Always return valid JSON when requested."

const defaultTimeLimit = 30

var typeInstructions = map[string]string{
	TypeMultipleChoice: "Create multiple choice questions with exactly 4 options each",
	TypeTrueFalse:      "Create true/false questions with clear statements",
	TypeShortAnswer:    "Create short answer questions requiring 1-3 word answers",
}

// buildQuizPrompt renders the shared quiz instruction block. Every provider
// sends the same prompt so results stay comparable across backends.
func buildQuizPrompt(content string, options QuizOptions) string {
	timeLimit := options.TimeLimit
	if timeLimit == 0 {
		timeLimit = defaultTimeLimit
	}

	explanationReq := "Include brief explanations (1 sentence)"
	if options.IncludeExplanations {
		explanationReq = "Include detailed explanations (2-3 sentences) for each answer"
	}

	estimatedTime := float64(options.QuestionCount*timeLimit) / 60

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert educational content creator. Generate a high-quality %s difficulty quiz with exactly %d questions based on the following content:\n\n",
		options.Difficulty, options.QuestionCount)
	sb.WriteString(content)
	sb.WriteString("\n\nSTRICT REQUIREMENTS:\n")
	fmt.Fprintf(&sb, "- Question type: %s\n", options.Type)
	fmt.Fprintf(&sb, "- %s\n", typeInstructions[options.Type])
	fmt.Fprintf(&sb, "- Difficulty level: %s (easy = basic recall, medium = application, hard = analysis/synthesis)\n", options.Difficulty)
	fmt.Fprintf(&sb, "- %s\n", explanationReq)
	fmt.Fprintf(&sb, "- Time limit: %d seconds per question\n", timeLimit)
	sb.WriteString(`- Questions must be clear, unambiguous, and directly related to the content
- For multiple choice: ensure only ONE correct answer and 3 plausible distractors
- For true/false: create clear statements that are definitively true or false
- Avoid trick questions or overly complex wording

CRITICAL: You MUST return ONLY valid JSON in this exact format with no additional text, markdown, or explanations:
`)
	fmt.Fprintf(&sb, `{
  "title": "Quiz Title",
  "description": "Brief quiz description",
  "category": "Subject category",
  "difficulty": "%s",
  "estimated_time": %g,
  "questions": [
    {
      "id": "q1",
      "type": "question_type",
      "question": "Question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": "Correct answer",
      "explanation": "Detailed explanation",
      "difficulty": "%s",
      "topic": "Topic name",
      "time_limit": %d,
      "hints": ["Hint 1", "Hint 2"]
    }
  ]
}
`, options.Difficulty, estimatedTime, options.Difficulty, timeLimit)
	fmt.Fprintf(&sb, "\nGenerate exactly %d questions. Ensure all content is educational, accurate, and well-structured. The response must be valid JSON that can be parsed directly.",
		options.QuestionCount)
	return sb.String()
}

func buildExplanationPrompt(question, userAnswer, correctAnswer string, simple bool) string {
	depth := "Provide a detailed explanation with context and examples."
	if simple {
		depth = "Provide a simple, easy-to-understand explanation."
	}

	return fmt.Sprintf(`Explain why the answer to this question is "%s" and not "%s":

Question: %s
User's Answer: %s
Correct Answer: %s

%s

Keep the explanation encouraging and educational.`, correctAnswer, userAnswer, question, userAnswer, correctAnswer, depth)
}

func buildSummaryPrompt(content string) string {
	return fmt.Sprintf(`Summarize this content into key points suitable for creating educational quizzes:

%s

Focus on:
- Main concepts and definitions
- Important facts and principles
- Key relationships between ideas
- Practical applications

Format as a structured summary with bullet points.`, content)
}

func buildLearningPathPrompt(goal, timeframe, difficulty string) string {
	return fmt.Sprintf(`Create a learning path for: "%s"
Timeframe: %s
Difficulty: %s

Generate a structured learning plan with:
1. Clear title
2. Detailed description
3. Key topics to cover (as array)
4. Recommended study schedule
5. Milestones and checkpoints

Return as JSON with: title, description, topics, schedule, milestones`, goal, timeframe, difficulty)
}
