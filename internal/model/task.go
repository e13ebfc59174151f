package model

import (
	"fmt"
	"regexp"
	"strings"
)

// TrackLogExt is the file extension for saved track logs.
const TrackLogExt = ".igc"

// TaskRef identifies one scored task within a competition.
//
// It is derived from a results-page URL such as
// "https://scoring.example.org/comp42/task7.html":
//   - Comp is the competition slug ("comp42")
//   - TaskName is the alphabetic prefix of the page name ("task")
//   - TaskNumber is its numeric suffix ("7")
//
// TaskNumber is kept as a string so the filename reproduces the URL
// verbatim, zero-padding included.
type TaskRef struct {
	// Comp is the competition slug, the second-to-last URL path segment.
	Comp string

	// TaskName is the alphabetic part of the final path segment.
	TaskName string

	// TaskNumber is the numeric part of the final path segment.
	TaskNumber string
}

// Slug returns the task page name without extension, e.g. "task7".
func (r TaskRef) Slug() string {
	return r.TaskName + r.TaskNumber
}

// PilotRow is one qualifying row from a results table.
//
// A row qualifies when it links to a track log and carries at least
// rank, pilot id and pilot name cells; rows missing any of those are
// dropped during extraction.
type PilotRow struct {
	// Rank is the pilot's position in the task, as printed in the table.
	Rank string

	// PilotID is the pilot's competition id.
	PilotID string

	// Name is the pilot's display name, unsanitized.
	Name string

	// TrackURL is the absolute URL of the pilot's track log.
	TrackURL string
}

// DownloadTask is one unit of work for the download manager: fetch
// TrackURL, splice the pilot name into the track log, save it as
// FileName.
//
// Tasks are immutable once built; NewDownloadTask computes the
// filename up front so every later stage agrees on it.
type DownloadTask struct {
	// TrackURL is the absolute URL to fetch the track log from.
	TrackURL string

	// FileName is the computed target filename, including extension.
	FileName string

	// PilotName is the display name spliced into the saved track log.
	PilotName string

	// Rank is the pilot's position, kept for progress reporting.
	Rank string

	// PilotID is the pilot's competition id, kept for progress reporting.
	PilotID string
}

// NewDownloadTask builds the download task for one results-table row.
//
// The filename follows the fixed template
//
//	{comp}-{task}{number}-{rank}-{pilot name}-{pilot id}.igc
//
// with the competition slug and the pilot name sanitized
// independently. Rank and pilot id are used verbatim.
func NewDownloadTask(ref TaskRef, row PilotRow) *DownloadTask {
	return &DownloadTask{
		TrackURL:  row.TrackURL,
		FileName:  TrackLogFileName(ref, row),
		PilotName: row.Name,
		Rank:      row.Rank,
		PilotID:   row.PilotID,
	}
}

// TrackLogFileName composes the deterministic filename for one
// pilot's track log.
//
// Example:
//
//	ref := TaskRef{Comp: "comp42", TaskName: "task", TaskNumber: "7"}
//	row := PilotRow{Rank: "1", PilotID: "99", Name: "Jane Doe"}
//	TrackLogFileName(ref, row) // "comp42-task7-1-Jane_Doe-99.igc"
func TrackLogFileName(ref TaskRef, row PilotRow) string {
	return fmt.Sprintf("%s-%s%s-%s-%s-%s%s",
		sanitizeFileName(ref.Comp),
		ref.TaskName,
		ref.TaskNumber,
		row.Rank,
		sanitizeFileName(row.Name),
		row.PilotID,
		TrackLogExt,
	)
}

// sanitizeFileName makes a value safe for use inside a filename.
//
// The following transformations are applied, in order:
//   - Leading and trailing whitespace is removed
//   - Each internal whitespace run is replaced with one underscore
//   - The characters \ / : * ? " < > | are deleted
//
// Example:
//
//	sanitizeFileName("  Jane  van Doe? ") // Returns "Jane_van_Doe"
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)

	// Whitespace becomes the word separator
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, "_")

	// Strip characters that are invalid in file names
	name = regexp.MustCompile(`[\\/:*?"<>|]`).ReplaceAllString(name, "")

	return name
}
