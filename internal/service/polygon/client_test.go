package polygon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"StockCast/internal/domain/models"
	xhttp "StockCast/pkg/http"
	"StockCast/pkg/util"
)

func fixedClock() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

func ms(y int, m time.Month, d int) int64 {
	// polygon stamps daily bars at midnight New York time
	return time.Date(y, m, d, 4, 0, 0, 0, time.UTC).UnixMilli()
}

func TestFetchBuildsRequestAndParses(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Authorization")
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		// out of order with a duplicate date
		_, _ = w.Write([]byte(`{"ticker":"AAPL","status":"OK","resultsCount":4,"results":[
			{"c":102,"t":` + itoa(ms(2025, 3, 5)) + `},
			{"c":100,"t":` + itoa(ms(2025, 3, 3)) + `},
			{"c":101,"t":` + itoa(ms(2025, 3, 4)) + `},
			{"c":103,"t":` + itoa(ms(2025, 3, 5)) + `}
		]}`))
	}))
	defer srv.Close()

	f := New(xhttp.NewClient(), srv.URL, "secret", WithClock(fixedClock))
	s, err := f.Fetch(context.Background(), "AAPL", 3)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if want := "/v2/aggs/ticker/AAPL/range/1/day/2025-03-01/2025-03-31"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if gotKey != "Bearer secret" {
		t.Errorf("authorization = %q", gotKey)
	}

	want := []float64{100, 101, 103}
	got := s.Closes()
	if len(got) != len(want) {
		t.Fatalf("closes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("close[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if d := util.FormatDay(s.Points[0].Time); d != "2025-03-03" {
		t.Errorf("first date = %s", d)
	}
	if s.Ticker != "AAPL" {
		t.Errorf("ticker = %q", s.Ticker)
	}
}

func TestFetchCalendarMonthWindow(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	f := New(nil, srv.URL, "k", WithClock(fixedClock), WithWindow(util.WindowCalendarMonth))
	s, err := f.Fetch(context.Background(), "MSFT", 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if want := "/v2/aggs/ticker/MSFT/range/1/day/2025-02-01/2025-02-28"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if !s.Empty() {
		t.Errorf("expected empty series")
	}
}

func TestFetchNonSuccessIsNotFound(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusTooManyRequests, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		f := New(nil, srv.URL, "k", WithClock(fixedClock))
		_, err := f.Fetch(context.Background(), "ZZZZ", 3)
		srv.Close()
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("status %d: err = %v, want ErrNotFound", code, err)
		}
	}
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := New(xhttp.NewClient(xhttp.WithTimeout(time.Second)), url, "k", WithClock(fixedClock))
	_, err := f.Fetch(context.Background(), "AAPL", 3)
	if !errors.Is(err, models.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestFetchErrorOmitsAPIKey(t *testing.T) {
	f := New(xhttp.NewClient(xhttp.WithTimeout(time.Second)), "http://127.0.0.1:1", "SECRETKEY123", WithClock(fixedClock))
	_, err := f.Fetch(context.Background(), "AAPL", 3)
	if !errors.Is(err, models.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
	if strings.Contains(err.Error(), "SECRETKEY123") {
		t.Fatalf("error leaks api key: %v", err)
	}
}

func TestFetchInvalidMonth(t *testing.T) {
	f := New(nil, "http://unused.invalid", "k", WithClock(fixedClock))
	for _, m := range []int{0, 13, -1} {
		if _, err := f.Fetch(context.Background(), "AAPL", m); !errors.Is(err, models.ErrInvalidMonth) {
			t.Errorf("month %d: err = %v", m, err)
		}
	}
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
