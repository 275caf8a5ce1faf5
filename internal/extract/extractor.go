package extract

import (
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minContainerChars is the threshold below which a class/id-matched
// container is considered trivial and the next marker is tried
const minContainerChars = 200

// contentSelectors are tried in priority order against both class and id
// attributes when no article/main region exists
var contentSelectors = []string{
	"content",
	"post-content",
	"entry-content",
	"article-content",
	"main-content",
	"post",
	"entry",
	"article",
}

// Extracted is the raw result of the strategy cascade: a title plus the
// markup of the chosen region, still to be cleaned
type Extracted struct {
	Title   string
	Content string
}

// strategy locates a candidate content region and returns its inner markup,
// or "" when it doesn't apply to this document
type strategy struct {
	name string
	run  func(doc *goquery.Document) string
}

var strategies = []strategy{
	{"article-tags", extractArticles},
	{"main-tag", extractMain},
	{"content-container", extractContentContainer},
	{"body-paragraphs", extractBodyParagraphs},
	{"full-body", extractFullBody},
}

// Extract runs the ordered strategy cascade over the markup and resolves a
// title. The returned content is raw markup; callers clean it separately.
func Extract(markup, sourceURL string) (*Extracted, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	// Scripts and styles never contain readable content and would pollute
	// every strategy below
	doc.Find("script, style, noscript").Remove()

	title := resolveTitle(doc, sourceURL)

	var content string
	for _, s := range strategies {
		candidate := s.run(doc)
		if strings.TrimSpace(candidate) != "" {
			log.Printf("[Extractor] Found content via strategy: %s", s.name)
			content = candidate
			break
		}
	}

	return &Extracted{Title: title, Content: content}, nil
}

func resolveTitle(doc *goquery.Document, sourceURL string) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	if parsed, err := url.Parse(sourceURL); err == nil && parsed.Hostname() != "" {
		return parsed.Hostname()
	}
	return sourceURL
}

// extractArticles concatenates every <article> region
func extractArticles(doc *goquery.Document) string {
	var parts []string
	doc.Find("article").Each(func(i int, s *goquery.Selection) {
		if html, err := s.Html(); err == nil {
			parts = append(parts, html)
		}
	})
	return strings.Join(parts, "\n\n")
}

// extractMain returns the single <main> region
func extractMain(doc *goquery.Document) string {
	html, err := doc.Find("main").First().Html()
	if err != nil {
		return ""
	}
	return html
}

// extractContentContainer finds the first div/section whose class or id
// contains one of the known content markers, in priority order
func extractContentContainer(doc *goquery.Document) string {
	for _, marker := range contentSelectors {
		sel := doc.Find(
			"div[class*='" + marker + "'], div[id*='" + marker + "'], section[class*='" + marker + "'], section[id*='" + marker + "']",
		).First()
		if sel.Length() == 0 {
			continue
		}
		html, err := sel.Html()
		if err != nil {
			continue
		}
		if len(html) > minContainerChars {
			return html
		}
	}
	return ""
}

// extractBodyParagraphs joins every <p> in the body, but only when there are
// enough of them to plausibly be the page's text
func extractBodyParagraphs(doc *goquery.Document) string {
	paragraphs := doc.Find("body p")
	if paragraphs.Length() <= 2 {
		return ""
	}
	var parts []string
	paragraphs.Each(func(i int, s *goquery.Selection) {
		if html, err := goquery.OuterHtml(s); err == nil {
			parts = append(parts, html)
		}
	})
	return strings.Join(parts, "\n")
}

// extractFullBody is the last resort: the entire body markup
func extractFullBody(doc *goquery.Document) string {
	html, err := doc.Find("body").First().Html()
	if err != nil {
		return ""
	}
	return html
}
