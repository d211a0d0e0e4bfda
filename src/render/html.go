package render

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// MailBody converts an HTML mail body to markdown suitable for terminal
// display. Plain-text bodies pass through unchanged; if the markdown
// conversion fails, the plain-text extraction is used instead.
func MailBody(contentType, body string) string {
	if !strings.EqualFold(contentType, "html") {
		return strings.TrimSpace(body)
	}

	markdown, err := convertHTMLToMarkdown(body)
	if err == nil {
		return strings.TrimSpace(markdown)
	}

	text, err := extractTextFromHTML(body)
	if err != nil {
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(text)
}

// convertHTMLToMarkdown converts HTML content to Markdown
func convertHTMLToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	return markdown, nil
}

// extractTextFromHTML extracts plain text from HTML content
func extractTextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, head").Remove()

	text := doc.Text()
	text = regexp.MustCompile(`\n{3,}`).ReplaceAllString(text, "\n\n")
	text = regexp.MustCompile(`[ \t]+`).ReplaceAllString(text, " ")
	return text, nil
}
