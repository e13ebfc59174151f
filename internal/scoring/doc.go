// Package scoring parses competition scoring-site pages.
//
// The scoring sites this package understands publish one HTML results
// page per flown task, addressed like
//
//	https://scoring.example.org/{competition}/task{n}.html
//
// with pilot results laid out in tables. Everything here is pure
// parsing; fetching the pages is the caller's job.
//
// # Task URLs
//
// ParseTaskURL derives the competition slug and task identity from a
// results-page URL:
//
//	ref, err := scoring.ParseTaskURL("https://scoring.example.org/comp42/task7.html")
//	// ref.Comp "comp42", ref.TaskName "task", ref.TaskNumber "7"
//
// # Results tables
//
// Extractor walks the results tables of a page and returns the rows
// that link to a track log:
//
//	ext := scoring.NewExtractor(scoring.DefaultSelectors())
//	rows, tables := ext.ExtractRows(html, pageURL)
//
// It also answers rank lookups for a single pilot (FindPilotRank) the
// way the scoring site's own widgets do, reading the second results
// table on the page.
//
// # Competition index
//
// ExtractCompetitions scrapes the site landing page for links to
// competition subdirectories.
package scoring
