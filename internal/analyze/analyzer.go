package analyze

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// MaxDocumentWords caps uploaded documents at roughly three pages
const MaxDocumentWords = 4500

// MinDocumentChars is the floor below which cleaned document text is
// considered unreadable
const MinDocumentChars = 100

// wordsPerPage drives the page-count estimate
const wordsPerPage = 250

// TooLongError reports a document over the word budget, carrying the
// measured count for the caller's error message
type TooLongError struct {
	WordCount int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("document too long: maximum %d words allowed (approximately 3 pages), got %d", MaxDocumentWords, e.WordCount)
}

// TooShortError reports cleaned text under the readable minimum
type TooShortError struct {
	Chars int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("content too short: %d characters after cleaning", e.Chars)
}

// Analysis is the heuristic digest of a piece of cleaned text
type Analysis struct {
	Title     string
	Summary   string
	KeyPoints []string
	Topics    []string
	Concepts  []string
	WordCount int
	PageCount int
	Language  string
}

var (
	sentenceRe  = regexp.MustCompile(`[.!?]+`)
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	nonWordRe   = regexp.MustCompile(`[^\w]`)
	numericRe   = regexp.MustCompile(`^\d+$`)
)

// importanceKeywords flag sentences likely to carry key information on the
// URL ingestion path
var importanceKeywords = []string{
	"important", "key", "main", "primary", "essential", "fundamental",
	"critical", "significant", "major", "principle", "concept", "theory",
	"method", "process", "result", "conclusion", "therefore", "however",
	"because", "due to",
}

// documentKeywords is the wider vocabulary used for uploaded documents
var documentKeywords = []string{
	"definition", "define", "important", "key", "main", "primary", "essential",
	"fundamental", "critical", "significant", "principle", "concept", "theory",
	"method", "process", "approach", "technique", "strategy", "framework",
	"result", "conclusion", "finding", "discovery", "research", "study",
	"analysis", "evaluation", "assessment", "comparison", "contrast",
	"cause", "effect", "reason", "because", "therefore", "thus", "hence",
	"however", "although", "despite", "nevertheless", "furthermore", "moreover",
}

// contentStopWords is the stop-word set for the URL ingestion path
var contentStopWords = newSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"is", "are", "was", "were", "be", "been", "have", "has", "had", "do", "does", "did",
	"will", "would", "could", "should", "may", "might", "can", "this", "that", "these",
	"those", "they", "them", "their", "there", "then", "than", "when", "where", "why",
	"how", "what", "who", "which", "some", "any", "all", "each", "every", "most", "many",
	"much", "more", "less", "few", "several", "other", "another", "such", "same", "different",
)

// documentStopWords extends the content set with adverbs and prepositions
// that show up heavily in prose documents
var documentStopWords = newSet(append(keys(contentStopWords),
	"also", "just", "only", "even", "still", "now", "here", "very", "well", "back", "through",
	"during", "before", "after", "above", "below", "up", "down", "out", "off", "over", "under",
	"again", "further", "once",
)...)

// englishMarkers is the coarse stop-word list behind language detection
var englishMarkers = newSet(
	"the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"is", "are", "was", "were", "have", "has", "had", "this", "that",
)

var conceptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z][a-z]+ (?:theory|principle|law|rule|method|approach|technique|strategy|framework|model|system)\b`),
	regexp.MustCompile(`\b(?:data|information|knowledge|learning|teaching|education|research|study|analysis|evaluation|assessment)[a-z]*\b`),
	regexp.MustCompile(`\b[a-z]+ (?:process|procedure|mechanism|structure|function|operation|behavior|pattern|trend)\b`),
}

// WordCount counts whitespace-separated tokens
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// AnalyzeContent digests cleaned text from a fetched page. The tuning here
// (topic frequency > 2, at most 10 key points, 3-point summary) follows the
// URL ingestion path and intentionally differs from AnalyzeDocument.
func AnalyzeContent(text string) Analysis {
	sentences := splitSentences(text)
	paragraphs := splitParagraphs(text)

	log.Printf("[Analyzer] Content input: %d sentences, %d paragraphs", len(sentences), len(paragraphs))

	keyPoints := collectKeyPoints(sentences, paragraphs, importanceKeywords, 15)
	if len(keyPoints) > 10 {
		keyPoints = keyPoints[:10]
	}

	return Analysis{
		Summary:   buildSummary(keyPoints, sentences, 3, 2),
		KeyPoints: keyPoints,
		Topics:    topicsByFrequency(text, contentStopWords, 3, 15),
		WordCount: WordCount(text),
		Language:  DetectLanguage(text, 200),
	}
}

// AnalyzeDocument digests cleaned text from an uploaded document. wordCount
// is measured on the upload as submitted, before cleaning, so the word budget
// and the reported count match what the user sent; the readable minimum
// applies to the cleaned text.
func AnalyzeDocument(text, fileName string, wordCount int) (Analysis, error) {
	if wordCount > MaxDocumentWords {
		return Analysis{}, &TooLongError{WordCount: wordCount}
	}
	if len(text) < MinDocumentChars {
		return Analysis{}, &TooShortError{Chars: len(text)}
	}

	sentences := splitSentences(text)
	paragraphs := splitParagraphs(text)

	log.Printf("[Analyzer] Document input: %d sentences, %d paragraphs, %d words", len(sentences), len(paragraphs), wordCount)

	keyPoints := collectKeyPoints(sentences, paragraphs, documentKeywords, 20)
	if len(keyPoints) > 15 {
		keyPoints = keyPoints[:15]
	}

	topics := topicsByFrequency(text, documentStopWords, 3, 12)

	pageCount := int(math.Ceil(float64(wordCount) / wordsPerPage))
	if pageCount > 3 {
		pageCount = 3
	}

	return Analysis{
		Title:     resolveDocumentTitle(text, fileName),
		Summary:   buildSummary(keyPoints, sentences, 5, 3),
		KeyPoints: keyPoints,
		Topics:    topics,
		Concepts:  extractConcepts(text),
		WordCount: wordCount,
		PageCount: pageCount,
		Language:  DetectLanguage(text, 100),
	}, nil
}

// QuizReadyDigest formats an analysis into the condensed blob handed to quiz
// generation: title, numbered key points, summary, topics and a slice of the
// raw content for context
func QuizReadyDigest(a Analysis, content string) string {
	var sb strings.Builder
	sb.WriteString("Title: " + a.Title + "\n\n")
	sb.WriteString("Key Learning Points:\n")
	points := a.KeyPoints
	if len(points) > 10 {
		points = points[:10]
	}
	for i, point := range points {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, point)
	}
	sb.WriteString("\nSummary:\n" + a.Summary + "\n\n")

	topics := a.Topics
	if len(topics) > 10 {
		topics = topics[:10]
	}
	sb.WriteString("Important Topics:\n" + strings.Join(topics, ", ") + "\n\n")

	core := content
	if len(core) > 2000 {
		core = core[:2000]
	}
	sb.WriteString("Core Content:\n" + core)
	return sb.String()
}

// DetectLanguage is a coarse binary check: enough English stop-words among
// the first tokenWindow tokens means "en", anything else is "unknown"
func DetectLanguage(text string, tokenWindow int) string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) > tokenWindow {
		words = words[:tokenWindow]
	}
	if len(words) == 0 {
		return "unknown"
	}

	englishCount := 0
	for _, word := range words {
		if englishMarkers[nonWordRe.ReplaceAllString(word, "")] {
			englishCount++
		}
	}

	ratio := float64(englishCount) / float64(len(words))
	if ratio > 0.05 {
		return "en"
	}
	return "unknown"
}

func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceRe.Split(text, -1) {
		if len(strings.TrimSpace(s)) > 20 {
			sentences = append(sentences, strings.TrimSpace(s))
		}
	}
	return sentences
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range paragraphRe.Split(text, -1) {
		if len(strings.TrimSpace(p)) > 50 {
			paragraphs = append(paragraphs, strings.TrimSpace(p))
		}
	}
	return paragraphs
}

// collectKeyPoints gathers topic sentences (paragraph openers) plus
// keyword-bearing sentences, deduplicated by prefix, up to limit
func collectKeyPoints(sentences, paragraphs []string, keywords []string, limit int) []string {
	var keyPoints []string

	for _, paragraph := range paragraphs {
		first := strings.TrimSpace(sentenceRe.Split(paragraph, 2)[0])
		if len(first) > 30 && len(first) < 200 {
			keyPoints = append(keyPoints, first+".")
		}
	}

	for _, sentence := range sentences {
		if len(keyPoints) >= limit {
			break
		}
		if len(sentence) <= 40 || len(sentence) >= 300 {
			continue
		}
		lower := strings.ToLower(sentence)
		matched := false
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		candidate := sentence + "."
		if !hasPrefixDuplicate(keyPoints, candidate) {
			keyPoints = append(keyPoints, candidate)
		}
	}

	if len(keyPoints) > limit {
		keyPoints = keyPoints[:limit]
	}
	return keyPoints
}

func hasPrefixDuplicate(points []string, candidate string) bool {
	prefix := candidate
	if len(prefix) > 30 {
		prefix = prefix[:30]
	}
	for _, p := range points {
		existing := p
		if len(existing) > 30 {
			existing = existing[:30]
		}
		if existing == prefix {
			return true
		}
	}
	return false
}

// buildSummary joins the first few key points, falling back to raw leading
// sentences, truncated to 1000 characters
func buildSummary(keyPoints, sentences []string, fromPoints, fromSentences int) string {
	var summary string
	if len(keyPoints) > 0 {
		n := fromPoints
		if n > len(keyPoints) {
			n = len(keyPoints)
		}
		summary = strings.Join(keyPoints[:n], " ")
	} else if len(sentences) > 0 {
		n := fromSentences
		if n > len(sentences) {
			n = len(sentences)
		}
		summary = strings.Join(sentences[:n], ". ") + "."
	}

	if len(summary) > 1000 {
		summary = summary[:1000]
	}
	return summary
}

type wordFreq struct {
	word  string
	count int
}

// topicsByFrequency keeps lower-cased tokens longer than three characters
// that clear minFreq occurrences, excluding stop-words and pure numbers,
// most frequent first
func topicsByFrequency(text string, stopWords map[string]bool, minFreq, limit int) []string {
	freq := make(map[string]int)
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		word := nonWordRe.ReplaceAllString(raw, "")
		if len(word) <= 3 || stopWords[word] || numericRe.MatchString(word) {
			continue
		}
		freq[word]++
	}

	var ranked []wordFreq
	for word, count := range freq {
		if count >= minFreq {
			ranked = append(ranked, wordFreq{word, count})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	topics := make([]string, 0, len(ranked))
	for _, wf := range ranked {
		topics = append(topics, wf.word)
	}
	return topics
}

// extractConcepts pulls education-domain terms by pattern, deduplicated,
// capped at 10
func extractConcepts(text string) []string {
	var concepts []string
	seen := make(map[string]bool)
	for _, pattern := range conceptPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			concept := strings.ToLower(strings.TrimSpace(match))
			if len(concept) <= 5 || seen[concept] {
				continue
			}
			seen[concept] = true
			concepts = append(concepts, concept)
			if len(concepts) >= 10 {
				return concepts
			}
		}
	}
	return concepts
}

// resolveDocumentTitle prefers a short first line, then the filename with
// separators turned into spaces
func resolveDocumentTitle(text, fileName string) string {
	firstLine := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	if len(firstLine) > 5 && len(firstLine) < 100 {
		return firstLine
	}

	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	if base == "" {
		return fileName
	}
	return base
}

func newSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
