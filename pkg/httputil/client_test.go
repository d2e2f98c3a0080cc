package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClientGetJSON(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Header.Get("X-Token") != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{"name":"demo"}`))
		case "/flaky":
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"name":"recovered"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(WithHeader("X-Token", "secret"), WithRetry(3, time.Millisecond))
	ctx := context.Background()

	var got struct{ Name string }
	if err := c.GetJSON(ctx, srv.URL+"/ok", &got); err != nil || got.Name != "demo" {
		t.Fatalf("GetJSON /ok = %+v, %v", got, err)
	}
	if err := c.GetJSON(ctx, srv.URL+"/flaky", &got); err != nil || got.Name != "recovered" {
		t.Fatalf("GetJSON /flaky = %+v, %v", got, err)
	}
	if err := c.GetJSON(ctx, srv.URL+"/missing", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetJSON /missing err = %v, want ErrNotFound", err)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantErr   error
		retryable bool
	}{
		{200, nil, false},
		{404, ErrNotFound, false},
		{401, ErrNetwork, false},
		{503, ErrNetwork, true},
	}
	for _, tt := range tests {
		err := checkStatus(tt.code)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("checkStatus(%d) = %v, want %v", tt.code, err, tt.wantErr)
		}
		if IsRetryable(err) != tt.retryable {
			t.Errorf("checkStatus(%d) retryable = %v", tt.code, IsRetryable(err))
		}
	}
}
