package scoring

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/flugbuch/igcfetch/internal/model"
)

// ErrNoTaskInfo is returned when a URL does not identify a task results page.
//
// This typically occurs when:
//   - The URL has fewer than two path segments
//   - The final segment has no numeric part (e.g. "index.html")
//   - The URL cannot be parsed at all
var ErrNoTaskInfo = errors.New("no task info in URL")

// taskPageRe splits a results-page name into its alphabetic and numeric
// parts, e.g. "task7.html" into "task" and "7".
var taskPageRe = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)`)

// ParseTaskURL derives the task reference from a results-page URL.
//
// The second-to-last path segment is the competition slug and the
// final segment names the task:
//
//	ref, err := ParseTaskURL("https://scoring.example.org/comp42/task7.html")
//	// ref == model.TaskRef{Comp: "comp42", TaskName: "task", TaskNumber: "7"}
//
// Returns ErrNoTaskInfo if the URL does not fit that shape. Callers
// treat this as fatal for the page: without a task reference no
// filename can be composed, so nothing is fetched.
func ParseTaskURL(pageURL string) (model.TaskRef, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return model.TaskRef{}, ErrNoTaskInfo
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return model.TaskRef{}, ErrNoTaskInfo
	}

	m := taskPageRe.FindStringSubmatch(segments[len(segments)-1])
	if m == nil {
		return model.TaskRef{}, ErrNoTaskInfo
	}

	return model.TaskRef{
		Comp:       segments[len(segments)-2],
		TaskName:   m[1],
		TaskNumber: m[2],
	}, nil
}
