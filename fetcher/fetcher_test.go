package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/itemlens/itemlens/config"
	"github.com/itemlens/itemlens/models"
)

func newTestFetcher(timeout time.Duration) *Fetcher {
	return New(config.FetchConfig{
		Timeout:      timeout,
		MaxBodyBytes: 10 << 20,
	})
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.Contains(got, "Chrome") {
			t.Errorf("User-Agent = %q, want a browser-like value", got)
		}
		w.Write([]byte("<html><body>product page</body></html>"))
	}))
	defer srv.Close()

	f := newTestFetcher(5 * time.Second)
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(res.HTML, "product page") {
		t.Errorf("HTML = %q", res.HTML)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", res.StatusCode)
	}
	if res.FinalURL != srv.URL {
		t.Errorf("FinalURL = %q, want %q", res.FinalURL, srv.URL)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	var final string
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final, http.StatusFound)
	})
	mux.HandleFunc("/end", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("landed"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	final = srv.URL + "/end"

	f := newTestFetcher(5 * time.Second)
	res, err := f.Fetch(context.Background(), srv.URL+"/start")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if res.FinalURL != final {
		t.Errorf("FinalURL = %q, want the post-redirect URL %q", res.FinalURL, final)
	}
}

func TestFetch_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := newTestFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}

	var prodErr *models.ProductError
	if !errors.As(err, &prodErr) {
		t.Fatalf("error type = %T, want *models.ProductError", err)
	}
	if prodErr.Code != models.ErrCodeFetchFailed {
		t.Errorf("code = %q, want %q", prodErr.Code, models.ErrCodeFetchFailed)
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer srv.Close()

	f := newTestFetcher(50 * time.Millisecond)
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected a timeout error")
	}

	var prodErr *models.ProductError
	if !errors.As(err, &prodErr) {
		t.Fatalf("error type = %T, want *models.ProductError", err)
	}
	if prodErr.Code != models.ErrCodeFetchTimeout {
		t.Errorf("code = %q, want %q", prodErr.Code, models.ErrCodeFetchTimeout)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	f := newTestFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/nope")
	if err == nil {
		t.Fatal("expected an error")
	}

	var prodErr *models.ProductError
	if !errors.As(err, &prodErr) {
		t.Fatalf("error type = %T, want *models.ProductError", err)
	}
	if prodErr.Code != models.ErrCodeFetchFailed {
		t.Errorf("code = %q, want %q", prodErr.Code, models.ErrCodeFetchFailed)
	}
}

func TestFetch_BodyCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	f := New(config.FetchConfig{Timeout: 5 * time.Second, MaxBodyBytes: 1024})
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(res.HTML) != 1024 {
		t.Errorf("body length = %d, want capped at 1024", len(res.HTML))
	}
}
