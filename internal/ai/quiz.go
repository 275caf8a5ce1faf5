package ai

// Quiz is the structure every provider is instructed to return for quiz
// generation. Field names match the wire format the clients parse.
type Quiz struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category,omitempty"`
	Difficulty    string     `json:"difficulty,omitempty"`
	EstimatedTime float64    `json:"estimated_time,omitempty"`
	Questions     []Question `json:"questions"`
}

type Question struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
	TimeLimit     int      `json:"time_limit"`
	Hints         []string `json:"hints,omitempty"`
}
