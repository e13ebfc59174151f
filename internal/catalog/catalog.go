// Package catalog answers questions about what a scoring site hosts:
// which competitions exist, which task pages a competition has, and
// where a pilot placed on a task.
//
// The catalog fetches and caches where the site's own pages allow it;
// parsing is delegated to the scoring package.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/flugbuch/igcfetch/internal/http"
	"github.com/flugbuch/igcfetch/internal/scoring"
)

// ErrNoTasks is returned when a competition has no reachable task pages.
var ErrNoTasks = errors.New("no task pages found")

// ErrTaskNotFound is returned when a task results page does not exist.
var ErrTaskNotFound = errors.New("task page not found")

// Options configures the catalog service.
type Options struct {
	// BaseURL is the scoring site root, with trailing slash.
	// Default: "https://scoring.paragleiter.org/"
	BaseURL string

	// ProbeConcurrency is how many task-page probes run at once.
	// Default: 4
	ProbeConcurrency int

	// ProbeMaxTasks is the highest task number probed for.
	// Default: 30
	ProbeMaxTasks int
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		BaseURL:          "https://scoring.paragleiter.org/",
		ProbeConcurrency: 4,
		ProbeMaxTasks:    30,
	}
}

// Service looks up competitions, task pages and pilot ranks.
//
// Example usage:
//
//	svc := catalog.NewService(client, extractor, catalog.DefaultOptions())
//
//	comps, err := svc.Competitions(ctx)
//	pages, err := svc.TaskPages(ctx, "https://scoring.example.org/comp42")
//	rank, err := svc.PilotRank(ctx, "comp42", "7", "99")
type Service struct {
	client *http.Client
	ext    *scoring.Extractor
	opts   Options

	mu    sync.Mutex
	comps []scoring.Competition
}

// NewService creates a catalog Service.
func NewService(client *http.Client, ext *scoring.Extractor, opts Options) *Service {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultOptions().BaseURL
	}
	if opts.ProbeConcurrency <= 0 {
		opts.ProbeConcurrency = DefaultOptions().ProbeConcurrency
	}
	if opts.ProbeMaxTasks <= 0 {
		opts.ProbeMaxTasks = DefaultOptions().ProbeMaxTasks
	}
	return &Service{
		client: client,
		ext:    ext,
		opts:   opts,
	}
}

// Competitions returns the competitions listed on the site's landing
// page, sorted by name.
//
// The first successful answer is cached for the life of the Service;
// the landing page changes rarely and the list feeds UI pickers.
func (s *Service) Competitions(ctx context.Context) ([]scoring.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.comps != nil {
		return s.comps, nil
	}

	html, err := s.client.GetString(ctx, s.opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch competition list: %w", err)
	}

	s.comps = scoring.ExtractCompetitions(html)
	return s.comps, nil
}

// TaskPages returns the URLs of a competition's task results pages, in
// task order.
//
// Scoring sites publish no machine-readable task index, so the pages
// task1.html through task{ProbeMaxTasks}.html are probed with HEAD
// requests, ProbeConcurrency at a time. compURL is the competition
// page, e.g. "https://scoring.example.org/comp42".
//
// Returns ErrNoTasks when none of the probed pages exist.
func (s *Service) TaskPages(ctx context.Context, compURL string) ([]string, error) {
	base := strings.TrimRight(compURL, "/")

	found := make([]bool, s.opts.ProbeMaxTasks)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.ProbeConcurrency)

	for i := range found {
		g.Go(func() error {
			ok, err := s.client.Exists(ctx, taskPageURL(base, strconv.Itoa(i+1)))
			if err != nil {
				return err
			}
			found[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("probe task pages: %w", err)
	}

	var pages []string
	for i, ok := range found {
		if ok {
			pages = append(pages, taskPageURL(base, strconv.Itoa(i+1)))
		}
	}
	if len(pages) == 0 {
		return nil, ErrNoTasks
	}
	return pages, nil
}

// PilotRank returns the rank of one pilot on one task, as printed on
// the results page.
//
// Returns ErrTaskNotFound when the task page does not exist,
// scoring.ErrPilotNotFound when the pilot is not in the results, and
// scoring.ErrUnexpectedTableShape when the page cannot be read.
func (s *Service) PilotRank(ctx context.Context, slug, taskNumber, pilotID string) (string, error) {
	compURL := strings.TrimRight(s.opts.BaseURL, "/") + "/" + slug

	html, err := s.client.GetString(ctx, taskPageURL(compURL, taskNumber))
	if err != nil {
		var fe *http.FetchError
		if errors.As(err, &fe) && fe.Kind == http.KindBadStatus && fe.StatusCode == 404 {
			return "", fmt.Errorf("task %s of %q: %w", taskNumber, slug, ErrTaskNotFound)
		}
		return "", fmt.Errorf("fetch results page: %w", err)
	}

	return s.ext.FindPilotRank(html, pilotID)
}

// taskPageURL builds the results-page URL for one task number.
func taskPageURL(compURL, number string) string {
	return fmt.Sprintf("%s/task%s.html", compURL, number)
}
