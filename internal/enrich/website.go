package enrich

import (
	"context"
	"fmt"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/shegge-stack/EmailGenerator/internal/fetch"
)

// MaxContextChars caps the company-website context handed to the
// composer; prompts degrade past this point.
const MaxContextChars = 4000

// WebsiteOptions configures company-website context extraction.
type WebsiteOptions struct {
	// UseBrowser enables the headless-browser fallback for pages that
	// render through JavaScript.
	UseBrowser bool
	Timeout    time.Duration
	Verbose    bool
}

// CompanyContext fetches a prospect's company website and returns its
// main content as truncated markdown, suitable as extra personalization
// context for prompt composition.
func CompanyContext(ctx context.Context, siteURL string, opts WebsiteOptions) (string, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = fetch.DefaultTimeout
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Timeout = timeout

	result, err := fetch.URL(ctx, siteURL, fetchOpts)
	if err != nil {
		return "", err
	}
	html := result.HTML

	text, err := fetch.ExtractMainText(html, fetch.CompanyPageSelectors(), fetch.CompanyPageNoiseSelectors()...)
	if err != nil {
		return "", err
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		if rendered, berr := fetch.WithBrowser(ctx, siteURL, timeout, opts.Verbose); berr == nil {
			html = rendered
		}
	}

	markdown, err := mainContentMarkdown(html)
	if err != nil || strings.TrimSpace(markdown) == "" {
		// Markdown conversion is best-effort; fall back to plain text.
		markdown = text
	}

	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return "", fmt.Errorf("no usable content extracted from %s", siteURL)
	}

	return truncate(markdown, MaxContextChars), nil
}

// mainContentMarkdown strips noise from the page and converts the main
// content region to markdown.
func mainContentMarkdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("nav, footer, header, script, style, noscript, iframe").Remove()
	doc.Find(strings.Join(fetch.CompanyPageNoiseSelectors(), ", ")).Remove()

	content := doc.Find("body")
	for _, selector := range fetch.CompanyPageSelectors() {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return "", err
	}

	converter := md.NewConverter("", true, nil)
	return converter.ConvertString(contentHTML)
}

// truncate cuts text at max runes, appending an ellipsis when trimmed.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
