package scoring

import (
	"errors"
	"net/url"
	"testing"

	"github.com/flugbuch/igcfetch/internal/model"
)

// resultsPage mimics a task results page: a summary table first, then
// the task ranking with track-log links.
const resultsPage = `<html><body>
<h1>Task 7</h1>
<table class="result">
  <tr><th>Task</th><th>Distance</th></tr>
  <tr><td>Race to goal</td><td>42.0 km</td></tr>
</table>
<table class="result">
  <tr><th>#</th><th>Id</th><th>Name</th><th>Glider</th><th>IGC</th></tr>
  <tr><td>1</td><td>99</td><td>Jane Doe</td><td>Zeno 2</td><td><a href="tracks/99.igc">igc</a></td></tr>
  <tr><td>2</td><td>104</td><td>Max Muster</td><td>Photon</td><td><a href="https://cdn.example.org/t/104.IGC">igc</a></td></tr>
  <tr><td>3</td><td>77</td><td></td><td>Ikuma 3</td><td><a href="tracks/77.igc">igc</a></td></tr>
  <tr><td>4</td><td>55</td><td>No Tracklog</td><td>Alpina</td></tr>
</table>
</body></html>`

func TestParseTaskURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    model.TaskRef
		wantErr bool
	}{
		{
			name: "plain task page",
			url:  "https://scoring.example.org/comp42/task7.html",
			want: model.TaskRef{Comp: "comp42", TaskName: "task", TaskNumber: "7"},
		},
		{
			name: "zero padded and mixed case",
			url:  "https://scoring.example.org/alpen-open/Task03.html",
			want: model.TaskRef{Comp: "alpen-open", TaskName: "Task", TaskNumber: "03"},
		},
		{
			name: "query string ignored",
			url:  "https://scoring.example.org/comp42/task5.html?lang=de",
			want: model.TaskRef{Comp: "comp42", TaskName: "task", TaskNumber: "5"},
		},
		{
			name:    "page name without number",
			url:     "https://scoring.example.org/comp42/index.html",
			wantErr: true,
		},
		{
			name:    "too few path segments",
			url:     "https://scoring.example.org/task7.html",
			wantErr: true,
		},
		{
			name:    "unparsable url",
			url:     "://scoring.example.org",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskURL(tt.url)

			if tt.wantErr {
				if !errors.Is(err, ErrNoTaskInfo) {
					t.Errorf("err = %v, want ErrNoTaskInfo", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseTaskURL() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractor_ExtractRows(t *testing.T) {
	base, _ := url.Parse("https://scoring.example.org/comp42/task7.html")
	ext := NewExtractor(DefaultSelectors())

	rows, tables := ext.ExtractRows(resultsPage, base)

	if tables != 2 {
		t.Errorf("tables = %d, want 2", tables)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %+v", len(rows), rows)
	}

	// Relative href resolved against the page URL
	want := model.PilotRow{
		Rank:     "1",
		PilotID:  "99",
		Name:     "Jane Doe",
		TrackURL: "https://scoring.example.org/comp42/tracks/99.igc",
	}
	if rows[0] != want {
		t.Errorf("rows[0] = %+v, want %+v", rows[0], want)
	}

	// Absolute href kept as is, extension matched case-insensitively
	if rows[1].TrackURL != "https://cdn.example.org/t/104.IGC" {
		t.Errorf("rows[1].TrackURL = %q", rows[1].TrackURL)
	}
	if rows[1].Name != "Max Muster" {
		t.Errorf("rows[1].Name = %q", rows[1].Name)
	}
}

func TestExtractor_ExtractRows_NoTables(t *testing.T) {
	ext := NewExtractor(DefaultSelectors())

	rows, tables := ext.ExtractRows(`<html><body><p>nothing scored yet</p></body></html>`, nil)

	if tables != 0 {
		t.Errorf("tables = %d, want 0", tables)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestExtractor_ExtractRows_NoQualifyingRows(t *testing.T) {
	html := `<html><body>
	<table class="result">
	  <tr><th>#</th><th>Id</th><th>Name</th></tr>
	  <tr><td>1</td><td>99</td><td>Jane Doe</td></tr>
	</table>
	</body></html>`

	ext := NewExtractor(DefaultSelectors())
	rows, tables := ext.ExtractRows(html, nil)

	if tables != 1 {
		t.Errorf("tables = %d, want 1", tables)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestExtractor_ExtractRows_CustomSelectors(t *testing.T) {
	html := `<html><body>
	<table class="standings">
	  <tr><td>1</td><td>12</td><td>Erste Pilotin</td><td><a href="12.igc">igc</a></td></tr>
	</table>
	</body></html>`

	ext := NewExtractor(Selectors{Table: "table.standings", Row: "tr", Cell: "td"})
	rows, tables := ext.ExtractRows(html, nil)

	if tables != 1 {
		t.Errorf("tables = %d, want 1", tables)
	}
	if len(rows) != 1 || rows[0].Name != "Erste Pilotin" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestExtractor_FindPilotRank(t *testing.T) {
	ext := NewExtractor(DefaultSelectors())

	rank, err := ext.FindPilotRank(resultsPage, "104")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rank != "2" {
		t.Errorf("rank = %q, want %q", rank, "2")
	}
}

func TestExtractor_FindPilotRank_NotFound(t *testing.T) {
	ext := NewExtractor(DefaultSelectors())

	_, err := ext.FindPilotRank(resultsPage, "31337")
	if !errors.Is(err, ErrPilotNotFound) {
		t.Errorf("err = %v, want ErrPilotNotFound", err)
	}
}

func TestExtractor_FindPilotRank_SingleTable(t *testing.T) {
	html := `<html><body>
	<table class="result">
	  <tr><td>1</td><td>99</td><td>Jane Doe</td></tr>
	</table>
	</body></html>`

	ext := NewExtractor(DefaultSelectors())
	_, err := ext.FindPilotRank(html, "99")
	if !errors.Is(err, ErrUnexpectedTableShape) {
		t.Errorf("err = %v, want ErrUnexpectedTableShape", err)
	}
}

func TestExtractCompetitions(t *testing.T) {
	html := `<html><body>
	<a href="comp42/">Comp42 Testival</a>
	<a href="alpen-open/">alpen-open</a>
	<a href="alpen-open/">duplicate entry</a>
	<a href="https://example.org/">external site</a>
	<a href="xc/">xc</a>
	<a href="bergcup2025">bergcup 2025</a>
	<a href="short-slug/">AO</a>
	</body></html>`

	comps := ExtractCompetitions(html)

	wantNames := []string{"Alpen Open", "Bergcup 2025", "Comp42 Testival", "Short-slug"}
	if len(comps) != len(wantNames) {
		t.Fatalf("got %d competitions, want %d: %+v", len(comps), len(wantNames), comps)
	}
	for i, want := range wantNames {
		if comps[i].Name != want {
			t.Errorf("comps[%d].Name = %q, want %q", i, comps[i].Name, want)
		}
	}

	if comps[0].Slug != "alpen-open" {
		t.Errorf("comps[0].Slug = %q, want %q", comps[0].Slug, "alpen-open")
	}
}
