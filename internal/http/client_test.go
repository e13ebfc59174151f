package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_Get(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("AXXX\nB record"))
	}))
	defer srv.Close()

	client := NewClient("igcfetch-test", 5*time.Second)
	body, err := client.GetString(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "AXXX\nB record" {
		t.Errorf("body = %q", body)
	}
	if gotAgent != "igcfetch-test" {
		t.Errorf("User-Agent = %q, want %q", gotAgent, "igcfetch-test")
	}
}

func TestClient_Get_BadStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantReason string
	}{
		{"not found", http.StatusNotFound, "bad status: 404 Not Found"},
		{"server error", http.StatusInternalServerError, "bad status: 500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			client := NewClient("igcfetch-test", 5*time.Second)
			_, err := client.Get(context.Background(), srv.URL)
			if err == nil {
				t.Fatalf("expected error for %d", tt.statusCode)
			}

			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("error is %T, want *FetchError", err)
			}
			if fe.Kind != KindBadStatus {
				t.Errorf("Kind = %v, want KindBadStatus", fe.Kind)
			}
			if fe.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", fe.StatusCode, tt.statusCode)
			}
			if fe.Error() != tt.wantReason {
				t.Errorf("Error() = %q, want %q", fe.Error(), tt.wantReason)
			}
		})
	}
}

func TestClient_Get_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	client := NewClient("igcfetch-test", 50*time.Millisecond)
	_, err := client.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error on timeout")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error is %T, want *FetchError", err)
	}
	if fe.Kind != KindTimeout {
		t.Errorf("Kind = %v, want KindTimeout", fe.Kind)
	}
	if !strings.HasPrefix(fe.Error(), "timeout:") {
		t.Errorf("Error() = %q, want timeout prefix", fe.Error())
	}
}

func TestClient_Get_NetworkError(t *testing.T) {
	client := NewClient("igcfetch-test", 5*time.Second)
	_, err := client.Get(context.Background(), "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error on connection refused")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error is %T, want *FetchError", err)
	}
	if fe.Kind != KindNetwork {
		t.Errorf("Kind = %v, want KindNetwork", fe.Kind)
	}
	if !strings.HasPrefix(fe.Error(), "network error:") {
		t.Errorf("Error() = %q, want network error prefix", fe.Error())
	}
}

func TestClient_Exists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/comp42/task1.html" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("igcfetch-test", 5*time.Second)

	ok, err := client.Exists(context.Background(), srv.URL+"/comp42/task1.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("Exists() = false for present page")
	}

	ok, err = client.Exists(context.Background(), srv.URL+"/comp42/task9.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Exists() = true for missing page")
	}
}
