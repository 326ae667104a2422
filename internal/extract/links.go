// Package extract pulls document links out of rendered listing markup.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Links returns every anchor href in the markup whose URL path ends with
// ext, matched case-insensitively. Results are in document order and
// duplicates are preserved: deduplication happens later against the store,
// not here. Empty or unparsable markup yields an empty slice.
func Links(markup, ext string) []string {
	if strings.TrimSpace(markup) == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	lowerExt := strings.ToLower(ext)
	var links []string

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		if !hasExtension(href, lowerExt) {
			return
		}
		links = append(links, href)
	})

	return links
}

// hasExtension matches against the URL path so query strings and fragments
// do not defeat the suffix check.
func hasExtension(href, lowerExt string) bool {
	if u, err := url.Parse(href); err == nil && u.Path != "" {
		return strings.HasSuffix(strings.ToLower(u.Path), lowerExt)
	}
	return strings.HasSuffix(strings.ToLower(href), lowerExt)
}

// Resolve makes href absolute against base. Unparsable inputs are returned
// unchanged so the download stage can report the failure per item.
func Resolve(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	hrefURL, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(hrefURL).String()
}
