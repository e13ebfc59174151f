// Package model defines the core data structures used throughout
// the igcfetch application.
//
// # TaskRef
//
// TaskRef identifies one scored task inside a competition, as derived
// from a results-page URL:
//
//	ref, err := scoring.ParseTaskURL("https://scoring.example.org/comp42/task7.html")
//	fmt.Println(ref.Comp)       // "comp42"
//	fmt.Println(ref.TaskName)   // "task"
//	fmt.Println(ref.TaskNumber) // "7"
//
// # PilotRow
//
// PilotRow is one qualifying row scraped from a results table: the
// pilot's rank, competition id, display name and the URL of their
// track log.
//
// # DownloadTask
//
// DownloadTask couples a track-log URL with the filename it will be
// saved under. The filename is computed once, at construction:
//
//	task := model.NewDownloadTask(ref, row)
//	fmt.Println(task.FileName) // "comp42-task7-1-Jane_Doe-99.igc"
//
// # Outcome
//
// Outcome records how a single download ended. A run produces exactly
// one Outcome per DownloadTask; Tally sums them up.
package model
