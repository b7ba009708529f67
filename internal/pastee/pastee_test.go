package pastee

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreate(t *testing.T) {
	t.Run("successful paste", func(t *testing.T) {
		var gotToken string
		var gotReq pasteRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/pastes" {
				t.Errorf("%s %s", r.Method, r.URL.Path)
			}
			gotToken = r.Header.Get("X-Auth-Token")
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Error(err)
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(pasteResponse{Link: "https://paste.ee/p/abc"})
		}))
		defer srv.Close()

		c := NewWithBaseURL("secret-key", srv.URL)
		link, err := c.Create(context.Background(), "the table")
		if err != nil {
			t.Fatal(err)
		}
		if link != "https://paste.ee/p/abc" {
			t.Errorf("link = %q", link)
		}
		if gotToken != "secret-key" {
			t.Errorf("token = %q", gotToken)
		}
		if len(gotReq.Sections) != 1 || gotReq.Sections[0].Contents != "the table" {
			t.Errorf("request = %+v", gotReq)
		}
	})

	t.Run("non-201 fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		c := NewWithBaseURL("bad-key", srv.URL)
		if _, err := c.Create(context.Background(), "x"); !errors.Is(err, ErrPasteFailed) {
			t.Errorf("expected ErrPasteFailed, got %v", err)
		}
	})

	t.Run("transient errors retry", func(t *testing.T) {
		attempts := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(pasteResponse{Link: "https://paste.ee/p/retry"})
		}))
		defer srv.Close()

		c := NewWithBaseURL("key", srv.URL)
		link, err := c.Create(context.Background(), "x")
		if err != nil {
			t.Fatal(err)
		}
		if link != "https://paste.ee/p/retry" || attempts != 2 {
			t.Errorf("link = %q, attempts = %d", link, attempts)
		}
	})
}
