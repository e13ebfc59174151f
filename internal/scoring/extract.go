package scoring

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/flugbuch/igcfetch/internal/model"
)

// Selectors are the CSS selectors used to walk a results page.
type Selectors struct {
	// Table selects the results tables, e.g. "table.result".
	Table string

	// Row selects the rows within a table, e.g. "tr".
	Row string

	// Cell selects the data cells within a row, e.g. "td".
	Cell string
}

// DefaultSelectors returns the selectors matching the reference
// scoring site.
func DefaultSelectors() Selectors {
	return Selectors{
		Table: "table.result",
		Row:   "tr",
		Cell:  "td",
	}
}

// Extractor pulls pilot rows out of results-page HTML.
//
// A page can carry several results tables (task ranking, overall
// standings); the Extractor walks all of them in document order.
//
// Example usage:
//
//	ext := NewExtractor(DefaultSelectors())
//
//	rows, tables := ext.ExtractRows(html, pageURL)
//	if tables == 0 {
//	    // not a results page
//	}
//	for _, row := range rows {
//	    fmt.Printf("#%s %s -> %s\n", row.Rank, row.Name, row.TrackURL)
//	}
type Extractor struct {
	sel Selectors
}

// NewExtractor creates an Extractor using the given selectors.
func NewExtractor(sel Selectors) *Extractor {
	return &Extractor{sel: sel}
}

// ExtractRows returns the qualifying pilot rows of a results page and
// the number of results tables found.
//
// A row qualifies when it links to a track log (an href ending in
// ".igc", matched case-insensitively) and carries at least three data
// cells: rank, pilot id and pilot name, in that order. Qualifying rows
// with an empty rank, id or name are dropped and logged; they produce
// no download and no outcome.
//
// Relative track-log hrefs are resolved against base, which should be
// the URL the page was fetched from. Rows come back in document order.
func (e *Extractor) ExtractRows(htmlContent string, base *url.URL) ([]model.PilotRow, int) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, 0
	}

	tables := doc.Find(e.sel.Table)

	var rows []model.PilotRow
	tables.Each(func(_ int, table *goquery.Selection) {
		table.Find(e.sel.Row).Each(func(_ int, row *goquery.Selection) {
			trackURL := trackLogHref(row, base)
			if trackURL == "" {
				// Header or summary row, nothing to download
				return
			}

			cells := row.Find(e.sel.Cell)
			if cells.Length() < 3 {
				slog.Debug("skipping results row", "reason", "too few cells", "cells", cells.Length())
				return
			}

			pilot := model.PilotRow{
				Rank:     strings.TrimSpace(cells.Eq(0).Text()),
				PilotID:  strings.TrimSpace(cells.Eq(1).Text()),
				Name:     strings.TrimSpace(cells.Eq(2).Text()),
				TrackURL: trackURL,
			}
			if pilot.Rank == "" || pilot.PilotID == "" || pilot.Name == "" {
				slog.Debug("skipping results row", "reason", "empty cell",
					"rank", pilot.Rank, "pilot_id", pilot.PilotID, "name", pilot.Name)
				return
			}

			rows = append(rows, pilot)
		})
	})

	return rows, tables.Length()
}

// trackLogHref returns the row's first track-log link resolved against
// base, or "" when the row has none.
func trackLogHref(row *goquery.Selection, base *url.URL) string {
	var trackURL string
	row.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if !strings.HasSuffix(strings.ToLower(href), model.TrackLogExt) {
			return true
		}
		trackURL = resolveHref(base, href)
		return false
	})
	return trackURL
}

// resolveHref makes href absolute relative to base. Absolute hrefs and
// unparsable ones pass through unchanged.
func resolveHref(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
