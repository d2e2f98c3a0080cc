package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/httputil"
	"github.com/matzehuels/weekgrid/pkg/timetable"
)

func newPortal(t *testing.T) *httptest.Server {
	t.Helper()
	demo := NewDemo()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /semesters/{sem}/weeks/{week}/sessions", func(w http.ResponseWriter, r *http.Request) {
		sel := timetable.WeekSelection{SemesterID: r.PathValue("sem"), WeekID: r.PathValue("week")}
		sessions, err := demo.Sessions(r.Context(), sel)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(sessions)
	})
	mux.HandleFunc("GET /semesters/{sem}/weeks", func(w http.ResponseWriter, r *http.Request) {
		weeks, err := demo.Weeks(r.Context(), r.PathValue("sem"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(weeks)
	})
	mux.HandleFunc("GET /periods", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(timetable.DefaultPeriodTable())
	})
	mux.HandleFunc("GET /broken/periods", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSource(t *testing.T) {
	srv := newPortal(t)
	src, err := NewHTTPSource(srv.URL+"/", httputil.NewClient(httputil.WithRetry(2, time.Millisecond)))
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	ctx := context.Background()

	sessions, err := src.Sessions(ctx, timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w01"})
	if err != nil || len(sessions) != len(demoWeek) {
		t.Fatalf("Sessions = %d, %v", len(sessions), err)
	}
	if sessions[3].CourseCode != "COMP3008" || sessions[3].DayOfWeek != timetable.Wednesday {
		t.Errorf("session order not preserved: %+v", sessions[3])
	}

	table, err := src.Periods(ctx)
	if err != nil || table.Len() != timetable.MaxPeriod {
		t.Fatalf("Periods = %v, %v", table, err)
	}

	weeks, err := src.Weeks(ctx, "2025-spring")
	if err != nil || len(weeks) != 2 {
		t.Errorf("Weeks = %v, %v", weeks, err)
	}

	_, err = src.Sessions(ctx, timetable.WeekSelection{SemesterID: "2024-fall", WeekID: "w42"})
	if !errors.Is(err, errors.ErrCodeWeekNotFound) {
		t.Errorf("missing week err = %v", err)
	}
}

func TestHTTPSourceNetworkError(t *testing.T) {
	srv := newPortal(t)
	src, _ := NewHTTPSource(srv.URL+"/broken", httputil.NewClient(httputil.WithRetry(2, time.Millisecond)))
	if _, err := src.Periods(context.Background()); !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("err = %v, want NETWORK_ERROR", err)
	}
}

func TestNewHTTPSourceRejectsBadURL(t *testing.T) {
	if _, err := NewHTTPSource("ftp://portal", nil); err == nil {
		t.Error("expected error for non-http scheme")
	}
}
