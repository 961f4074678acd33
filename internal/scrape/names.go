// Package scrape extracts university names from the source wiki page.
package scrape

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rotisserie/eris"
)

// DefaultSelector matches the list links inside the article tables of the
// Wikipedia "List of colleges and universities" page.
const DefaultSelector = "div#mw-content-text > div.mw-parser-output > table tr ul li a"

// UniversityNames parses the HTML document in r and returns the trimmed text
// of every element matching selector, in document order. Nothing is filtered
// or deduplicated. A document with no matches yields an empty slice.
func UniversityNames(r io.Reader, selector string) ([]string, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, eris.Wrapf(err, "scrape: compile selector %q", selector)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: parse html")
	}

	links := doc.FindMatcher(sel)
	names := make([]string, 0, links.Length())
	links.Each(func(_ int, s *goquery.Selection) {
		names = append(names, strings.TrimSpace(s.Text()))
	})
	return names, nil
}
