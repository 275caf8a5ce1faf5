package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/neurativo/backend/internal/ai"
	"github.com/neurativo/backend/internal/analyze"
	"github.com/neurativo/backend/internal/core"
	"github.com/neurativo/backend/internal/fetcher"
	"github.com/neurativo/backend/internal/middleware"
)

// Services groups all service dependencies for REST handlers
type Services struct {
	ContentCore *core.ContentCore
	AIService   *ai.Service
	Auth        *middleware.Auth
}

// errorResponse is the error envelope every endpoint uses
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CreateRESTHandler creates the REST API endpoints. The acting user is
// resolved once per request and carried on the context; anonymous requests
// are served, they just leave no usage or persistence trail.
func CreateRESTHandler(services Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := middleware.WithActor(r.Context(), services.Auth.ActorFromRequest(r))
		r = r.WithContext(ctx)

		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
			return
		}

		switch r.URL.Path {
		case "/api/extract-content":
			handleExtractContent(w, r, services.ContentCore)
		case "/api/analyze-document":
			handleAnalyzeDocument(w, r, services.ContentCore)
		case "/api/quiz/generate":
			handleGenerateQuiz(w, r, services.AIService)
		case "/api/quiz/explanation":
			handleGenerateExplanation(w, r, services.AIService)
		case "/api/content/summarize":
			handleSummarizeContent(w, r, services.AIService)
		case "/api/learning-path":
			handleLearningPath(w, r, services.AIService)
		default:
			http.NotFound(w, r)
		}
	}
}

func handleExtractContent(w http.ResponseWriter, r *http.Request, contentCore *core.ContentCore) {
	var req struct {
		URL     string              `json:"url"`
		Options core.ExtractOptions `json:"options"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required", "")
		return
	}

	result, err := contentCore.ExtractFromURL(r.Context(), req.URL, req.Options)
	if err != nil {
		writeExtractError(w, req.URL, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeExtractError maps pipeline failures to statuses the clients act on:
// bad input is 400, a slow upstream is 408, unreadable pages are 422 and
// everything else is 500
func writeExtractError(w http.ResponseWriter, url string, err error) {
	log.Printf("[REST] Extraction failed for %s: %v", url, err)
	switch {
	case fetcher.IsKind(err, fetcher.KindInvalidURL):
		writeError(w, http.StatusBadRequest, "invalid URL", err.Error())
	case fetcher.IsKind(err, fetcher.KindTimeout):
		writeError(w, http.StatusRequestTimeout, "request timeout - the URL took too long to respond", "")
	case errors.Is(err, core.ErrNoReadableContent):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "")
	default:
		writeError(w, http.StatusInternalServerError, "failed to extract content from URL", err.Error())
	}
}

func handleAnalyzeDocument(w http.ResponseWriter, r *http.Request, contentCore *core.ContentCore) {
	var req struct {
		Content  string `json:"content"`
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Content == "" || req.FileName == "" {
		writeError(w, http.StatusBadRequest, "content and fileName are required", "")
		return
	}

	result, err := contentCore.AnalyzeDocument(r.Context(), req.Content, req.FileName, req.FileType)
	if err != nil {
		var tooLong *analyze.TooLongError
		var tooShort *analyze.TooShortError
		switch {
		case errors.As(err, &tooLong):
			writeError(w, http.StatusRequestEntityTooLarge, tooLong.Error(), "")
		case errors.As(err, &tooShort):
			writeError(w, http.StatusUnprocessableEntity, tooShort.Error(), "")
		default:
			log.Printf("[REST] Document analysis failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to analyze document", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func handleGenerateQuiz(w http.ResponseWriter, r *http.Request, aiService *ai.Service) {
	var req struct {
		Content string         `json:"content"`
		Options ai.QuizOptions `json:"options"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required", "")
		return
	}

	if req.Options.QuestionCount <= 0 {
		req.Options.QuestionCount = 5
	}
	if req.Options.Difficulty == "" {
		req.Options.Difficulty = "medium"
	}
	if req.Options.Type == "" {
		req.Options.Type = ai.TypeMultipleChoice
	}

	writeJSON(w, http.StatusOK, aiService.GenerateQuiz(r.Context(), req.Content, req.Options))
}

func handleGenerateExplanation(w http.ResponseWriter, r *http.Request, aiService *ai.Service) {
	var req struct {
		Question      string `json:"question"`
		UserAnswer    string `json:"userAnswer"`
		CorrectAnswer string `json:"correctAnswer"`
		Simple        bool   `json:"simple"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Question == "" || req.CorrectAnswer == "" {
		writeError(w, http.StatusBadRequest, "question and correctAnswer are required", "")
		return
	}

	writeJSON(w, http.StatusOK, aiService.GenerateExplanation(r.Context(), req.Question, req.UserAnswer, req.CorrectAnswer, req.Simple))
}

func handleSummarizeContent(w http.ResponseWriter, r *http.Request, aiService *ai.Service) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required", "")
		return
	}

	writeJSON(w, http.StatusOK, aiService.SummarizeContent(r.Context(), req.Content))
}

func handleLearningPath(w http.ResponseWriter, r *http.Request, aiService *ai.Service) {
	var req struct {
		Goal       string `json:"goal"`
		Timeframe  string `json:"timeframe"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Goal == "" {
		writeError(w, http.StatusBadRequest, "goal is required", "")
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	writeJSON(w, http.StatusOK, aiService.GenerateLearningPath(r.Context(), req.Goal, req.Timeframe, req.Difficulty))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[REST] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}
