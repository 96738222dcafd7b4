package resume

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported upload types
const (
	MIMEPlain = "text/plain"
	MIMEPDF   = "application/pdf"
	MIMEDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEHTML  = "text/html"
)

var (
	spaceRun      = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
	paragraphEnd  = regexp.MustCompile(`</w:p>`)
	lineBreakTags = regexp.MustCompile(`<w:(?:br|tab)\s*/>`)
)

// MIMEFromFilename guesses the upload type from the file extension.
// Unknown extensions return "".
func MIMEFromFilename(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".text":
		return MIMEPlain
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	case ".html", ".htm":
		return MIMEHTML
	default:
		return ""
	}
}

// ExtractText returns the cleaned plain text of an uploaded resume.
func ExtractText(mimeType string, data []byte) (string, error) {
	// Content-Type headers may carry parameters such as charset
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	var (
		text string
		err  error
	)
	switch strings.TrimSpace(strings.ToLower(mimeType)) {
	case MIMEPlain:
		text = string(data)
	case MIMEPDF:
		text, err = pdfText(data)
	case MIMEDOCX:
		text, err = docxText(data)
	case MIMEHTML:
		text, err = htmlText(string(data))
	default:
		return "", &UnsupportedTypeError{MIMEType: mimeType}
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns WordprocessingML; keep paragraph breaks, drop the markup
	content := doc.Editable().GetContent()
	content = paragraphEnd.ReplaceAllString(content, "</w:p>\n")
	content = lineBreakTags.ReplaceAllString(content, " ")
	return markupText(content)
}

func htmlText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, noscript, nav, footer").Remove()
	doc.Find("br, p, div, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}

func markupText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("failed to parse document markup: %w", err)
	}
	return doc.Text(), nil
}

// CleanText normalizes line endings, collapses runs of spaces, trims every
// line and keeps at most one blank line between paragraphs.
func CleanText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}

	content = strings.Join(lines, "\n")
	content = blankLineRun.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
