package scoring

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrUnexpectedTableShape is returned when a results page does not
// carry the two results tables a rank lookup needs.
var ErrUnexpectedTableShape = errors.New("results table structure not as expected")

// ErrPilotNotFound is returned when a pilot id appears nowhere in the
// results table.
var ErrPilotNotFound = errors.New("pilot id not found in results")

// FindPilotRank returns the rank of one pilot on a task results page.
//
// Task pages carry the task ranking as the second results table, after
// a summary table; the lookup walks that second table, skips header
// rows and compares each row's pilot-id cell against pilotID. The
// matching row's first cell is the rank, returned as printed on the
// page.
//
// Returns ErrUnexpectedTableShape when the page has fewer than two
// results tables and ErrPilotNotFound when no row matches.
func (e *Extractor) FindPilotRank(htmlContent, pilotID string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", ErrUnexpectedTableShape
	}

	tables := doc.Find(e.sel.Table)
	if tables.Length() < 2 {
		return "", ErrUnexpectedTableShape
	}

	var rank string
	tables.Eq(1).Find(e.sel.Row).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if row.Find("th").Length() > 0 {
			// Header row
			return true
		}
		cells := row.Find(e.sel.Cell)
		if cells.Length() < 2 {
			return true
		}
		if strings.TrimSpace(cells.Eq(1).Text()) == pilotID {
			rank = strings.TrimSpace(cells.Eq(0).Text())
			return false
		}
		return true
	})

	if rank == "" {
		return "", ErrPilotNotFound
	}
	return rank, nil
}
