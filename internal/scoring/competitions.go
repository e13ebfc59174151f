package scoring

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Competition is one competition listed on the scoring site's landing page.
type Competition struct {
	// Slug is the URL path segment of the competition, e.g. "comp42".
	Slug string

	// Name is the display name shown in pickers, derived from the
	// link text.
	Name string
}

// compLinkRe matches relative hrefs that point at a competition
// subdirectory, e.g. "alpen-open/" or "comp42".
var compLinkRe = regexp.MustCompile(`^[a-z0-9-]+/?$`)

// ExtractCompetitions scrapes competition links from the scoring
// site's landing page.
//
// Anchors whose href is a plain lowercase subdirectory are taken as
// competitions. The display name is the link text with dashes turned
// into spaces and each word capitalized; unusably short names fall
// back to the raw link text or the capitalized slug. Duplicate slugs
// are dropped and the result is sorted by name.
func ExtractCompetitions(htmlContent string) []Competition {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	var competitions []Competition
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !compLinkRe.MatchString(href) {
			return
		}

		slug := strings.Trim(href, "/")
		name := strings.TrimSpace(a.Text())
		if slug == "" || name == "" || len(slug) <= 3 {
			return
		}
		if _, dup := seen[slug]; dup {
			return
		}

		competitions = append(competitions, Competition{
			Slug: slug,
			Name: displayName(slug, name),
		})
		seen[slug] = struct{}{}
	})

	sort.Slice(competitions, func(i, j int) bool {
		return competitions[i].Name < competitions[j].Name
	})

	return competitions
}

// displayName formats a competition link text for display.
func displayName(slug, linkText string) string {
	words := strings.Fields(strings.ReplaceAll(linkText, "-", " "))
	for i, w := range words {
		words[i] = capitalize(w)
	}
	formatted := strings.Join(words, " ")

	// Very short results usually mean the link text was an
	// abbreviation; prefer the raw text or the slug instead.
	if len(formatted) < 4 {
		if len(linkText) > 3 {
			return linkText
		}
		return capitalize(slug)
	}
	return formatted
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
