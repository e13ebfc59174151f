package widget

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flugbuch/igcfetch/internal/catalog"
	igchttp "github.com/flugbuch/igcfetch/internal/http"
	"github.com/flugbuch/igcfetch/internal/scoring"
)

const taskPage = `<html><body>
<table class="result">
  <tr><th>Task</th><th>Distance</th></tr>
  <tr><td>Race to goal</td><td>42.0 km</td></tr>
</table>
<table class="result">
  <tr><th>#</th><th>Id</th><th>Name</th></tr>
  <tr><td>1</td><td>99</td><td>Jane Doe</td></tr>
  <tr><td>2</td><td>104</td><td>Max Muster</td></tr>
</table>
</body></html>`

const landingPage = `<html><body>
<a href="comp42/">Comp42 Testival</a>
<a href="alpen-open/">alpen-open</a>
</body></html>`

// newWidgetRouter wires a widget service against a fake scoring site.
func newWidgetRouter(t *testing.T) chi.Router {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(landingPage))
		case "/comp42/task1.html":
			w.Write([]byte(taskPage))
		case "/badcomp/task1.html":
			w.Write([]byte(`<html><body><table class="result"><tr><td>1</td></tr></table></body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client := igchttp.NewClient("igcfetch-test", 5*time.Second)
	ext := scoring.NewExtractor(scoring.DefaultSelectors())
	cat := catalog.NewService(client, ext, catalog.Options{
		BaseURL:          srv.URL + "/",
		ProbeConcurrency: 2,
		ProbeMaxTasks:    5,
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(cat, logger)

	r := chi.NewRouter()
	svc.RegisterHTTP(r)
	return r
}

func TestService_Landing(t *testing.T) {
	r := newWidgetRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, `<option value="comp42">Comp42 Testival</option>`) {
		t.Error("competition option missing from form")
	}
	if strings.Contains(body, "Could not load competitions") {
		t.Error("fallback option rendered despite competitions being available")
	}
}

func TestService_Landing_SavedPilotID(t *testing.T) {
	r := newWidgetRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "saved_pilot_id", Value: "80227"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), `value="80227"`) {
		t.Error("saved pilot ID not pre-filled")
	}
}

func TestService_Rank(t *testing.T) {
	r := newWidgetRouter(t)

	req := httptest.NewRequest("GET", "/get_rank?competition=comp42&task=1&pilot_id=104", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `<div id="rank-display">2</div>`) {
		t.Errorf("rank not displayed: %s", w.Body.String())
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("cookie set without remember=yes")
	}
}

func TestService_Rank_Remember(t *testing.T) {
	r := newWidgetRouter(t)

	req := httptest.NewRequest("GET", "/get_rank?competition=comp42&task=1&pilot_id=104&remember=yes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var saved *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "saved_pilot_id" {
			saved = c
		}
	}
	if saved == nil {
		t.Fatal("saved_pilot_id cookie not set")
	}
	if saved.Value != "104" {
		t.Errorf("cookie value = %q, want %q", saved.Value, "104")
	}
	if saved.MaxAge != 365*24*60*60 {
		t.Errorf("cookie max-age = %d, want one year", saved.MaxAge)
	}
	if saved.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie samesite = %v, want Lax", saved.SameSite)
	}
}

func TestService_Rank_MissingParams(t *testing.T) {
	r := newWidgetRouter(t)

	req := httptest.NewRequest("GET", "/get_rank?competition=comp42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Missing required parameters") {
		t.Error("missing-parameters message not rendered")
	}
}

func TestService_Rank_TaskNotFound(t *testing.T) {
	r := newWidgetRouter(t)

	req := httptest.NewRequest("GET", "/get_rank?competition=comp42&task=9&pilot_id=104", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Task 9 page not found for competition &#39;comp42&#39;.") {
		t.Errorf("task-not-found message not rendered: %s", w.Body.String())
	}
}

func TestService_Rank_PilotNotFound(t *testing.T) {
	r := newWidgetRouter(t)

	req := httptest.NewRequest("GET", "/get_rank?competition=comp42&task=1&pilot_id=31337", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Pilot ID not found in results.") {
		t.Error("pilot-not-found message not rendered")
	}
}

func TestService_Rank_UnexpectedTableShape(t *testing.T) {
	r := newWidgetRouter(t)

	req := httptest.NewRequest("GET", "/get_rank?competition=badcomp&task=1&pilot_id=104", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Results table structure not as expected") {
		t.Error("table-shape message not rendered")
	}
}
