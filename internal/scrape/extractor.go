package scrape

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors locate the page elements the extractor reads.
type Selectors struct {
	Headline  string // block holding the top headline anchor
	Picture   string // block holding the lead image
	Image     string // image element inside Picture
	Body      string // article body container
	Paragraph string // paragraph elements inside Body
}

// DefaultSelectors match the Fox News homepage and article layout.
var DefaultSelectors = Selectors{
	Headline:  "h3.title",
	Picture:   "picture",
	Image:     "img",
	Body:      "div.article-body",
	Paragraph: "p",
}

// Headline is what the homepage yields before the article body is known.
type Headline struct {
	Title string
	Link  string
	Image *string
}

// Extractor pulls headline, image and body text out of raw markup.
type Extractor struct {
	base      *url.URL
	selectors Selectors
}

// NewExtractor resolves relative links against the scheme and host of baseURL.
// Empty selector fields fall back to DefaultSelectors.
func NewExtractor(baseURL string, sel Selectors) (*Extractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	return &Extractor{
		base:      &url.URL{Scheme: u.Scheme, Host: u.Host},
		selectors: withDefaults(sel),
	}, nil
}

func withDefaults(sel Selectors) Selectors {
	if sel.Headline == "" {
		sel.Headline = DefaultSelectors.Headline
	}
	if sel.Picture == "" {
		sel.Picture = DefaultSelectors.Picture
	}
	if sel.Image == "" {
		sel.Image = DefaultSelectors.Image
	}
	if sel.Body == "" {
		sel.Body = DefaultSelectors.Body
	}
	if sel.Paragraph == "" {
		sel.Paragraph = DefaultSelectors.Paragraph
	}
	return sel
}

// ExtractHeadline reads the first headline block and the first lead image.
// A missing headline block or anchor is an *ExtractionError; a missing image
// is not.
func (e *Extractor) ExtractHeadline(markup string) (*Headline, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &ExtractionError{Kind: NoHeadline, Selector: e.selectors.Headline, Err: err}
	}

	block := doc.Find(e.selectors.Headline).First()
	if block.Length() == 0 {
		return nil, &ExtractionError{Kind: NoHeadline, Selector: e.selectors.Headline}
	}

	anchor := block.Find("a").First()
	if anchor.Length() == 0 {
		return nil, &ExtractionError{Kind: NoLink, Selector: e.selectors.Headline + " a"}
	}

	href, ok := anchor.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return nil, &ExtractionError{Kind: NoLink, Selector: e.selectors.Headline + " a[href]"}
	}

	link, err := e.resolve(href)
	if err != nil {
		return nil, &ExtractionError{Kind: NoLink, Selector: e.selectors.Headline + " a[href]", Err: err}
	}

	return &Headline{
		Title: cleanText(anchor.Text()),
		Link:  link,
		Image: e.extractImage(doc),
	}, nil
}

func (e *Extractor) extractImage(doc *goquery.Document) *string {
	img := doc.Find(e.selectors.Picture).First().Find(e.selectors.Image).First()
	if img.Length() == 0 {
		return nil
	}

	src, ok := img.Attr("src")
	src = strings.TrimSpace(src)
	if !ok || src == "" {
		return nil
	}

	if strings.HasPrefix(src, "//") {
		src = "https:" + src
		return &src
	}

	resolved, err := e.resolve(src)
	if err != nil {
		return nil
	}
	return &resolved
}

// ExtractArticleBody joins the paragraphs of the article body container with
// single spaces. It returns "" when the container is missing.
func (e *Extractor) ExtractArticleBody(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	container := doc.Find(e.selectors.Body).First()
	if container.Length() == 0 {
		return ""
	}

	var paragraphs []string
	container.Find(e.selectors.Paragraph).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(html.UnescapeString(s.Text()))
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.ReplaceAll(strings.Join(paragraphs, " "), "\u00a0", " ")
}

// resolve returns href unchanged when it already carries a scheme and
// resolves it against the site origin otherwise.
func (e *Extractor) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		if ref.Host == "" {
			return "", fmt.Errorf("link %q has no host", href)
		}
		return ref.String(), nil
	}
	return e.base.ResolveReference(ref).String(), nil
}

// cleanText decodes entities and collapses whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
