package extract

import (
	"regexp"
	"strings"
)

var (
	scriptRe   = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRe    = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	noscriptRe = regexp.MustCompile(`(?is)<noscript\b[^>]*>.*?</noscript>`)
	chromeRe   = regexp.MustCompile(`(?is)<(nav|header|footer|aside|menu)\b[^>]*>.*?</(nav|header|footer|aside|menu)>`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)

	spaceRe      = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n\s*\n+`)
	anySpaceRe   = regexp.MustCompile(`\s+`)
)

// entityReplacer decodes the fixed table of common HTML entities
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&hellip;", "...",
	"&mdash;", "—",
	"&ndash;", "–",
	"&rsquo;", "'",
	"&lsquo;", "'",
	"&rdquo;", `"`,
	"&ldquo;", `"`,
)

// boilerplateRes match navigation and footer phrases that survive tag
// stripping. Matches are replaced with a space rather than deleted so
// surrounding words don't merge.
var boilerplateRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)skip to (?:main )?content`),
	regexp.MustCompile(`(?i)(?:main )?menu`),
	regexp.MustCompile(`(?i)navigation`),
	regexp.MustCompile(`(?i)breadcrumb`),
	regexp.MustCompile(`(?i)share this`),
	regexp.MustCompile(`(?i)follow us`),
	regexp.MustCompile(`(?i)subscribe`),
	regexp.MustCompile(`(?i)newsletter`),
	regexp.MustCompile(`(?i)copyright.*all rights reserved`),
	regexp.MustCompile(`(?i)privacy policy`),
	regexp.MustCompile(`(?i)terms of (?:service|use)`),
	regexp.MustCompile(`(?i)cookie policy`),
	regexp.MustCompile(`(?i)back to top`),
	regexp.MustCompile(`(?i)read more`),
	regexp.MustCompile(`(?i)continue reading`),
}

var (
	pageNumberRe  = regexp.MustCompile(`(?m)^Page \d+.*$`)
	loneNumberRe  = regexp.MustCompile(`(?m)^\d+\s*$`)
	docMetadataRe = regexp.MustCompile(`(?m)^(Created|Modified|Author|Title):\s*.*$`)
	// Anything outside word characters and a safe punctuation set becomes a
	// space; uploaded documents carry control characters and stray symbols
	unsafeCharRe = regexp.MustCompile(`[^\w\s.,!?;:\-()\[\]{}"']`)
)

// CleanHTML turns extracted markup into plain text: structural chrome out,
// tags stripped, entities decoded, boilerplate blanked, whitespace collapsed.
// Idempotent: cleaning already-clean text is a no-op.
func CleanHTML(markup string) string {
	text := scriptRe.ReplaceAllString(markup, "")
	text = styleRe.ReplaceAllString(text, "")
	text = noscriptRe.ReplaceAllString(text, "")
	text = chromeRe.ReplaceAllString(text, "")

	text = tagRe.ReplaceAllString(text, " ")
	text = entityReplacer.Replace(text)

	for _, re := range boilerplateRes {
		text = re.ReplaceAllString(text, " ")
	}

	text = spaceRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// CleanDocument cleans pasted/uploaded document text: page numbers, lone
// numeric lines and document metadata lines go, and anything outside the
// safe character set maps to a space
func CleanDocument(content string) string {
	cleaned := pageNumberRe.ReplaceAllString(content, "")
	cleaned = loneNumberRe.ReplaceAllString(cleaned, "")
	cleaned = docMetadataRe.ReplaceAllString(cleaned, "")
	cleaned = unsafeCharRe.ReplaceAllString(cleaned, " ")
	cleaned = anySpaceRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
