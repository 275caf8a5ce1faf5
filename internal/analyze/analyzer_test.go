package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDocumentRejectsOverWordBudget(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("word ", 4501))

	_, err := AnalyzeDocument(content, "big.txt", WordCount(content))
	var tooLong *TooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 4501, tooLong.WordCount)
	assert.Contains(t, tooLong.Error(), "4501")
}

func TestAnalyzeDocumentGatesOnSubmittedWordCount(t *testing.T) {
	// The text handed in is already cleaned and under budget; the count
	// measured on the upload still decides
	content := strings.TrimSpace(strings.Repeat("word ", 100))

	_, err := AnalyzeDocument(content, "scan.txt", 4700)
	var tooLong *TooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 4700, tooLong.WordCount)
}

func TestAnalyzeDocumentAcceptsExactWordBudget(t *testing.T) {
	content := strings.TrimSpace(strings.Repeat("word ", 4500))

	got, err := AnalyzeDocument(content, "big.txt", WordCount(content))
	require.NoError(t, err)
	assert.Equal(t, 4500, got.WordCount)
	assert.Equal(t, 3, got.PageCount, "page estimate caps at 3")
}

func TestAnalyzeDocumentRejectsShortContent(t *testing.T) {
	_, err := AnalyzeDocument("barely anything here", "short.txt", 3)
	var tooShort *TooShortError
	require.ErrorAs(t, err, &tooShort)
}

func TestAnalyzeDocumentTopicsByFrequency(t *testing.T) {
	content := "Study Notes\n\n" +
		"The framework defines the approach. The framework guides every decision. " +
		"A framework needs discipline, and the framework rewards it. " +
		"Meanwhile the cat appeared once and the weather changed twice, weather being fickle. " +
		"These sentences exist to push the text over the minimum readable length for analysis."

	got, err := AnalyzeDocument(content, "notes.txt", WordCount(content))
	require.NoError(t, err)

	assert.Contains(t, got.Topics, "framework", "words at or above the frequency floor become topics")
	assert.NotContains(t, got.Topics, "cat", "below-floor words are excluded")
	assert.NotContains(t, got.Topics, "the", "stop-words are excluded")
	assert.Equal(t, "en", got.Language)
}

func TestAnalyzeDocumentTitleFromFirstLine(t *testing.T) {
	content := "Introduction to Cell Biology\n" + strings.Repeat("Cells are the basic unit of life. ", 10)
	got, err := AnalyzeDocument(content, "upload.pdf", WordCount(content))
	require.NoError(t, err)
	assert.Equal(t, "Introduction to Cell Biology", got.Title)
}

func TestAnalyzeDocumentTitleFromFileName(t *testing.T) {
	longLine := strings.Repeat("An unreasonably long opening line that cannot serve as a title ", 3)
	content := longLine + "\n" + strings.Repeat("Cells are the basic unit of life. ", 10)

	got, err := AnalyzeDocument(content, "cell-biology_notes.pdf", WordCount(content))
	require.NoError(t, err)
	assert.Equal(t, "cell biology notes", got.Title)
}

func TestAnalyzeContentKeyPointsFromTopicSentences(t *testing.T) {
	content := "The water cycle moves moisture between land and sky endlessly. Evaporation lifts water from oceans and lakes into the air.\n\n" +
		"Condensation is the important process that forms clouds from vapor. Droplets gather until they are heavy enough to fall."

	got := AnalyzeContent(content)
	require.NotEmpty(t, got.KeyPoints)
	assert.LessOrEqual(t, len(got.KeyPoints), 10)
	assert.Contains(t, got.KeyPoints[0], "The water cycle moves moisture")
	assert.NotEmpty(t, got.Summary)
}

func TestAnalyzeContentSummaryWithoutKeywords(t *testing.T) {
	content := "Quartz sand melts near two thousand degrees. Glassblowers shape the molten result by hand. Cooling must happen slowly or it cracks."
	got := AnalyzeContent(content)
	assert.NotEmpty(t, got.Summary)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "en", DetectLanguage("the cat and the dog are in the house with the mouse", 200))
	assert.Equal(t, "unknown", DetectLanguage("zzz qqq xxx yyy www vvv uuu ttt sss rrr", 200))
	assert.Equal(t, "unknown", DetectLanguage("", 200))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("  one   two\nthree "))
}
