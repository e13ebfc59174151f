package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/flugbuch/igcfetch/internal/catalog"
	"github.com/flugbuch/igcfetch/internal/config"
	"github.com/flugbuch/igcfetch/internal/http"
	"github.com/flugbuch/igcfetch/internal/igc"
	"github.com/flugbuch/igcfetch/internal/model"
	"github.com/flugbuch/igcfetch/internal/scoring"
	"github.com/flugbuch/igcfetch/internal/storage"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ErrAborted marks a task that was cancelled before it could finish.
// Cancelled tasks count as failures so the tally always covers every
// prepared task.
var ErrAborted = errors.New("aborted")

// ErrRunInProgress is returned when StartDownloads is called while a
// run is already underway.
var ErrRunInProgress = errors.New("download run already in progress")

// Batch is the prepared work for one results page.
type Batch struct {
	// Ref identifies the task the page belongs to.
	Ref model.TaskRef

	// PageURL is where the page was fetched from.
	PageURL string

	// Tasks are the downloads, one per qualifying pilot row, in
	// table order.
	Tasks []*model.DownloadTask
}

// Manager coordinates track-log downloads.
//
// A Manager is used in two phases, mirroring how the CLI and TUI
// drive it: Initialize turns the input URLs into download tasks, then
// StartDownloads works through them strictly one at a time, waiting
// the configured delay between download starts and recording one
// outcome per task. Per-task failures never stop the run; the final
// event carries the tally.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	extractor  *scoring.Extractor
	catalog    *catalog.Service
	sink       storage.Sink

	batches  []*Batch
	outcomes []model.Outcome

	running    atomic.Bool
	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new download Manager.
//
// The sink decides where track logs end up; onProgress receives the
// user-facing events and may be nil.
func NewManager(settings *config.Settings, sink storage.Sink, onProgress func(ProgressEvent)) *Manager {
	httpClient := http.NewClient(settings.UserAgent, settings.RequestTimeout())
	extractor := scoring.NewExtractor(settings.ToSelectors())

	return &Manager{
		settings:   settings,
		httpClient: httpClient,
		extractor:  extractor,
		catalog: catalog.NewService(httpClient, extractor, catalog.Options{
			BaseURL:          settings.BaseURL,
			ProbeConcurrency: settings.ProbeConcurrency,
			ProbeMaxTasks:    settings.ProbeMaxTasks,
		}),
		sink:       sink,
		onProgress: onProgress,
	}
}

// Initialize prepares download tasks from the input URLs.
//
// The input may carry several results-page URLs, one per line. With
// DownloadAllTasks set, each URL is taken as a competition and
// expanded into all of its task pages first. Pages that cannot be
// prepared are reported and skipped; an error is returned only when
// the input contains no URLs at all.
func (m *Manager) Initialize(ctx context.Context, input string) error {
	pageURLs := m.parseInputURLs(input)
	if len(pageURLs) == 0 {
		return errors.New("no page URLs in input")
	}

	if m.settings.DownloadAllTasks {
		pageURLs = m.expandCompetitions(ctx, pageURLs)
	}

	for _, pageURL := range pageURLs {
		m.prepareBatch(ctx, pageURL)
	}

	return nil
}

// StartDownloads works through all prepared tasks, one at a time.
//
// Consecutive download starts are at least the configured delay
// apart. Every task ends in exactly one recorded outcome: a failed
// fetch, transform or save is reported and the run moves on; when ctx
// is cancelled the current and all remaining tasks resolve to
// "aborted" failures. The run always finishes with a tally event.
//
// Only one run may be active per Manager; a second concurrent call
// returns ErrRunInProgress.
func (m *Manager) StartDownloads(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}
	defer m.running.Store(false)

	total := m.TotalTasks()
	if total == 0 {
		m.progress(ProgressEvent{Message: "Nothing to download", Level: LevelWarning})
		return nil
	}

	runID := uuid.NewString()
	slog.Info("starting downloads", "run_id", runID, "tasks", total, "delay", m.settings.DownloadDelay())
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading %d track logs", total), Level: LevelInfo})

	// One limiter across all batches keeps the pacing global. Burst 1
	// lets the first download start immediately.
	limiter := rate.NewLimiter(rate.Every(m.settings.DownloadDelay()), 1)

	for _, batch := range m.batches {
		for _, task := range batch.Tasks {
			outcome := m.runTask(ctx, limiter, task)
			if outcome.Failed() {
				slog.Warn("task failed", "run_id", runID, "file", outcome.FileName, "reason", outcome.Reason())
			}
			m.record(outcome)
		}
	}

	tally := m.Tally()
	slog.Info("downloads finished", "run_id", runID, "succeeded", tally.Succeeded, "failed", tally.Failed)

	level := LevelSuccess
	if tally.Failed > 0 {
		level = LevelWarning
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Finished: %s", tally), Level: level})

	return nil
}

// runTask downloads, fixes and saves one track log.
func (m *Manager) runTask(ctx context.Context, limiter *rate.Limiter, task *model.DownloadTask) model.Outcome {
	// Pacing gate. A cancelled wait resolves the task as aborted
	// instead of dropping it.
	if err := limiter.Wait(ctx); err != nil {
		return model.Outcome{FileName: task.FileName, Err: ErrAborted}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading %s", task.FileName), Level: LevelVerbose})

	content, err := m.httpClient.GetString(ctx, task.TrackURL)
	if err != nil {
		if ctx.Err() != nil {
			err = ErrAborted
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed %s: %v", task.FileName, err), Level: LevelVerbose})
		return model.Outcome{FileName: task.FileName, Err: err}
	}

	fixed := igc.InsertPilotInCharge(content, task.PilotName)

	if err := m.sink.Save(ctx, task.FileName, []byte(fixed)); err != nil {
		if ctx.Err() != nil {
			err = ErrAborted
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed %s: %v", task.FileName, err), Level: LevelVerbose})
		return model.Outcome{FileName: task.FileName, Err: err}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s", task.FileName), Level: LevelVerbose})
	return model.Outcome{FileName: task.FileName}
}

// prepareBatch turns one results page into download tasks.
func (m *Manager) prepareBatch(ctx context.Context, pageURL string) {
	ref, err := scoring.ParseTaskURL(pageURL)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No task info in %s, skipping page", pageURL), Level: LevelError})
		return
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching results page: %s", pageURL), Level: LevelVerbose})

	html, err := m.httpClient.GetString(ctx, pageURL)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching %s: %v", pageURL, err), Level: LevelError})
		return
	}

	base, _ := url.Parse(pageURL)
	rows, tables := m.extractor.ExtractRows(html, base)
	if tables == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No result tables on %s", pageURL), Level: LevelWarning})
		return
	}
	if len(rows) == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("No track logs linked on %s", pageURL), Level: LevelWarning})
		return
	}

	tasks := make([]*model.DownloadTask, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, model.NewDownloadTask(ref, row))
	}

	m.mu.Lock()
	m.batches = append(m.batches, &Batch{Ref: ref, PageURL: pageURL, Tasks: tasks})
	m.mu.Unlock()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %s %s: %d track logs", ref.Comp, ref.Slug(), len(tasks)), Level: LevelInfo})
}

// expandCompetitions turns competition URLs into task-page URLs.
func (m *Manager) expandCompetitions(ctx context.Context, inputURLs []string) []string {
	var pages []string
	for _, inputURL := range inputURLs {
		compURL := competitionURL(inputURL)

		taskPages, err := m.catalog.TaskPages(ctx, compURL)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not list tasks for %s: %v", compURL, err), Level: LevelError})
			continue
		}

		m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d task pages for %s", len(taskPages), compURL), Level: LevelInfo})
		pages = append(pages, taskPages...)
	}
	return pages
}

// competitionURL reduces an input URL to its competition page. Task
// page URLs lose their final segment; anything else only loses a
// trailing slash.
func competitionURL(inputURL string) string {
	trimmed := strings.TrimRight(inputURL, "/")
	if _, err := scoring.ParseTaskURL(inputURL); err == nil {
		if i := strings.LastIndex(trimmed, "/"); i > 0 {
			return trimmed[:i]
		}
	}
	return trimmed
}

// parseInputURLs splits the raw input into page URLs.
func (m *Manager) parseInputURLs(input string) []string {
	lines := strings.Split(input, "\n")
	var urls []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && (strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://")) {
			urls = append(urls, line)
		}
	}
	return urls
}

// Batches returns the prepared batches.
func (m *Manager) Batches() []*Batch {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.batches
}

// Summaries returns one line per prepared batch.
func (m *Manager) Summaries() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]string, len(m.batches))
	for i, batch := range m.batches {
		summaries[i] = fmt.Sprintf("%s %s (%d track logs)", batch.Ref.Comp, batch.Ref.Slug(), len(batch.Tasks))
	}
	return summaries
}

// TotalTasks returns the number of prepared download tasks.
func (m *Manager) TotalTasks() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, batch := range m.batches {
		total += len(batch.Tasks)
	}
	return total
}

// Progress returns how many tasks have finished out of the total.
func (m *Manager) Progress() (completed, total int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total = 0
	for _, batch := range m.batches {
		total += len(batch.Tasks)
	}
	return len(m.outcomes), total
}

// Outcomes returns a copy of the outcomes recorded so far, in task order.
func (m *Manager) Outcomes() []model.Outcome {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Outcome, len(m.outcomes))
	copy(out, m.outcomes)
	return out
}

// Tally sums the outcomes recorded so far.
func (m *Manager) Tally() model.Tally {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return model.TallyOutcomes(m.outcomes)
}

func (m *Manager) record(outcome model.Outcome) {
	m.mu.Lock()
	m.outcomes = append(m.outcomes, outcome)
	m.mu.Unlock()
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
