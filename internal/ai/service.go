package ai

import (
	"context"
	"fmt"
	"log"
)

// UsageRecorder receives one record per provider attempt, failed attempts
// included. Recording is best-effort and must never block or fail the caller.
type UsageRecorder interface {
	Record(ctx context.Context, feature, provider string, resp *Response)
}

// Feature labels attached to usage records
const (
	FeatureQuiz         = "generate_quiz"
	FeatureExplanation  = "generate_explanation"
	FeatureSummarize    = "summarize_content"
	FeatureLearningPath = "generate_learning_path"
)

// Service routes generation calls to the active provider and falls back once
// on a provider error. A Response carrying a provider-reported Error is a
// valid answer and is returned without fallback.
type Service struct {
	registry *Registry
	usage    UsageRecorder
}

func NewService(registry *Registry, usage UsageRecorder) *Service {
	return &Service{registry: registry, usage: usage}
}

func (s *Service) GenerateQuiz(ctx context.Context, content string, options QuizOptions) *Response {
	return s.dispatch(ctx, FeatureQuiz, "", func(p Provider) (*Response, error) {
		return p.GenerateQuiz(ctx, content, options)
	})
}

func (s *Service) GenerateExplanation(ctx context.Context, question, userAnswer, correctAnswer string, simple bool) *Response {
	return s.dispatch(ctx, FeatureExplanation, "Unable to generate explanation at this time.", func(p Provider) (*Response, error) {
		return p.GenerateExplanation(ctx, question, userAnswer, correctAnswer, simple)
	})
}

func (s *Service) SummarizeContent(ctx context.Context, content string) *Response {
	return s.dispatch(ctx, FeatureSummarize, "Unable to summarize content at this time.", func(p Provider) (*Response, error) {
		return p.SummarizeContent(ctx, content)
	})
}

func (s *Service) GenerateLearningPath(ctx context.Context, goal, timeframe, difficulty string) *Response {
	return s.dispatch(ctx, FeatureLearningPath, "Unable to generate learning path at this time.", func(p Provider) (*Response, error) {
		return p.GenerateLearningPath(ctx, goal, timeframe, difficulty)
	})
}

// dispatch runs the call against the active provider, then against exactly
// one fallback on error. terminalContent is the soft answer returned when
// the fallback fails too.
func (s *Service) dispatch(ctx context.Context, feature, terminalContent string, call func(Provider) (*Response, error)) *Response {
	provider, ok := s.registry.ActiveProvider()
	if !ok {
		log.Printf("[AIService.%s] No provider registered for active %q", feature, s.registry.Active())
		return &Response{Error: fmt.Sprintf("No AI provider available. Active: %s", s.registry.Active())}
	}

	resp, err := call(provider)
	if err == nil {
		s.record(ctx, feature, provider.Name(), resp)
		return resp
	}
	log.Printf("[AIService.%s] Provider %s failed: %v", feature, provider.Name(), err)
	s.record(ctx, feature, provider.Name(), &Response{Error: err.Error()})

	fallback := s.registry.Fallback(provider.Name())
	if fallback == nil {
		return &Response{Content: terminalContent, Error: err.Error()}
	}

	log.Printf("[AIService.%s] Trying fallback provider: %s", feature, fallback.Name())
	resp, err = call(fallback)
	if err != nil {
		log.Printf("[AIService.%s] Fallback %s failed: %v", feature, fallback.Name(), err)
		s.record(ctx, feature, fallback.Name(), &Response{Error: err.Error()})
		return &Response{Content: terminalContent, Error: err.Error()}
	}

	s.record(ctx, feature, fallback.Name(), resp)
	return resp
}

func (s *Service) record(ctx context.Context, feature, provider string, resp *Response) {
	if s.usage == nil {
		return
	}
	s.usage.Record(ctx, feature, provider, resp)
}
