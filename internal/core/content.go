package core

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/neurativo/backend/internal/analyze"
	"github.com/neurativo/backend/internal/extract"
	"github.com/neurativo/backend/internal/fetcher"
	"github.com/neurativo/backend/internal/middleware"
	"github.com/neurativo/backend/internal/store"
)

// minURLContentChars is the floor below which an extraction is considered to
// have found nothing readable
const minURLContentChars = 50

// ErrNoReadableContent signals the cleaned page text was too thin to use
var ErrNoReadableContent = errors.New("could not extract meaningful content from the webpage")

// ContentStore is the persistence surface the pipeline needs
type ContentStore interface {
	SaveExtractedContent(ctx context.Context, rec store.ExtractedContentRecord) error
}

// ExtractOptions tunes URL extraction
type ExtractOptions struct {
	Summarize  bool     `json:"summarize"`
	MaxLength  int      `json:"maxLength"`
	FocusAreas []string `json:"focusAreas"`
}

// ContentMetadata describes the provenance of an extraction
type ContentMetadata struct {
	SourceURL   string    `json:"sourceUrl"`
	WordCount   int       `json:"wordCount"`
	ExtractedAt time.Time `json:"extractedAt"`
	ContentType string    `json:"contentType"`
	Language    string    `json:"language"`
}

// ExtractResult is the response payload for URL extraction
type ExtractResult struct {
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Summary   string          `json:"summary,omitempty"`
	KeyPoints []string        `json:"keyPoints"`
	Topics    []string        `json:"topics"`
	Metadata  ContentMetadata `json:"metadata"`
}

// DocumentMetadata describes the provenance of an analyzed document
type DocumentMetadata struct {
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType,omitempty"`
	WordCount   int       `json:"wordCount"`
	PageCount   int       `json:"pageCount"`
	ExtractedAt time.Time `json:"extractedAt"`
	Language    string    `json:"language"`
}

// DocumentResult is the response payload for document analysis
type DocumentResult struct {
	Title            string           `json:"title"`
	Content          string           `json:"content"`
	Summary          string           `json:"summary"`
	KeyPoints        []string         `json:"keyPoints"`
	Topics           []string         `json:"topics"`
	Concepts         []string         `json:"concepts"`
	QuizReadyContent string           `json:"quizReadyContent"`
	Metadata         DocumentMetadata `json:"metadata"`
}

// ContentCore runs the ingestion pipelines: fetched pages and uploaded
// documents both end as cleaned text plus a heuristic digest
type ContentCore struct {
	fetcher *fetcher.Fetcher
	store   ContentStore
}

func NewContentCore(f *fetcher.Fetcher, s ContentStore) *ContentCore {
	return &ContentCore{fetcher: f, store: s}
}

// ExtractFromURL fetches the page, extracts the main region, cleans it and
// optionally analyzes it. Successful extractions are persisted for the
// acting user; anonymous calls leave no record.
func (c *ContentCore) ExtractFromURL(ctx context.Context, rawURL string, opts ExtractOptions) (*ExtractResult, error) {
	fetched, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	extracted, err := extract.Extract(string(fetched.Body), rawURL)
	if err != nil {
		return nil, err
	}

	content := extract.CleanHTML(extracted.Content)
	if len(content) < minURLContentChars {
		log.Printf("[ContentCore.Extract] Rejecting %s: only %d cleaned chars", rawURL, len(content))
		return nil, ErrNoReadableContent
	}

	if opts.MaxLength > 0 && len(content) > opts.MaxLength {
		content = content[:opts.MaxLength]
	}

	result := &ExtractResult{
		Title:     extracted.Title,
		Content:   content,
		KeyPoints: []string{},
		Topics:    []string{},
		Metadata: ContentMetadata{
			SourceURL:   rawURL,
			WordCount:   analyze.WordCount(content),
			ExtractedAt: time.Now().UTC(),
			ContentType: fetched.ContentType,
			Language:    analyze.DetectLanguage(content, 200),
		},
	}

	if opts.Summarize {
		analysis := analyze.AnalyzeContent(content)
		result.Summary = analysis.Summary
		if len(analysis.KeyPoints) > 0 {
			result.KeyPoints = analysis.KeyPoints
		}
		if len(analysis.Topics) > 0 {
			result.Topics = analysis.Topics
		}
	}

	c.persistExtraction(ctx, result)
	return result, nil
}

// persistExtraction saves the digest for the acting user. Best-effort and
// detached: a failed insert is logged and the response goes out unchanged.
func (c *ContentCore) persistExtraction(ctx context.Context, result *ExtractResult) {
	userID := middleware.Actor(ctx)
	if userID == "" || c.store == nil {
		return
	}

	rec := store.ExtractedContentRecord{
		UserID:    userID,
		URL:       result.Metadata.SourceURL,
		Title:     result.Title,
		Content:   result.Content,
		Summary:   result.Summary,
		KeyPoints: result.KeyPoints,
		Topics:    result.Topics,
		WordCount: result.Metadata.WordCount,
		Language:  result.Metadata.Language,
	}

	go func() {
		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.store.SaveExtractedContent(saveCtx, rec); err != nil {
			log.Printf("[ContentCore.Extract] Error saving extraction: %v", err)
		}
	}()
}

// AnalyzeDocument cleans pasted or uploaded document text and produces the
// full study digest, including the condensed quiz-ready form
func (c *ContentCore) AnalyzeDocument(ctx context.Context, content, fileName, fileType string) (*DocumentResult, error) {
	// The word budget applies to the upload as submitted, not the cleaned text
	wordCount := analyze.WordCount(content)
	cleaned := extract.CleanDocument(content)

	analysis, err := analyze.AnalyzeDocument(cleaned, fileName, wordCount)
	if err != nil {
		return nil, err
	}

	log.Printf("[ContentCore.Document] Analyzed %q: %d words, %d key points, %d topics",
		fileName, analysis.WordCount, len(analysis.KeyPoints), len(analysis.Topics))

	return &DocumentResult{
		Title:            analysis.Title,
		Content:          cleaned,
		Summary:          analysis.Summary,
		KeyPoints:        analysis.KeyPoints,
		Topics:           analysis.Topics,
		Concepts:         analysis.Concepts,
		QuizReadyContent: analyze.QuizReadyDigest(analysis, cleaned),
		Metadata: DocumentMetadata{
			FileName:    fileName,
			FileType:    fileType,
			WordCount:   analysis.WordCount,
			PageCount:   analysis.PageCount,
			ExtractedAt: time.Now().UTC(),
			Language:    analysis.Language,
		},
	}, nil
}
