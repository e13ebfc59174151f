// Package download provides the orchestration logic for fetching
// track logs from competition scoring sites.
//
// # Manager
//
// The Manager coordinates the entire download process:
//
//  1. Parse input URLs (optionally expanding a competition into all
//     of its task pages)
//  2. Fetch each results page and extract the pilot rows
//  3. Download each track log, one at a time, with a fixed minimum
//     delay between download starts
//  4. Splice the pilot-in-charge header into each track log
//  5. Save the result under a deterministic filename
//  6. Record one outcome per task and report the final tally
//
// # Basic Usage
//
//	manager := download.NewManager(settings, sink, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Initialize(ctx, "https://scoring.example.org/comp42/task7.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manager.StartDownloads(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(manager.Tally()) // "22 succeeded, 2 failed"
//
// # Pacing
//
// Downloads are strictly sequential. A shared rate limiter keeps
// consecutive download starts at least settings.DownloadDelayMs apart,
// which is the tool's way of not hammering small scoring servers.
//
// # Failure Isolation
//
// A failed task is recorded as a failure outcome and the run moves on
// to the next task. Cancelling the context resolves the current and
// all remaining tasks to "aborted" failures, so outcomes always add up
// to the number of prepared tasks.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Per-task detail is LevelVerbose; batch notices are LevelInfo and the
// closing tally is LevelSuccess or LevelWarning.
package download
