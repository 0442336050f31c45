package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubVerifier struct {
	userID string
	err    error
}

func (s stubVerifier) Verify(string) (string, error) {
	return s.userID, s.err
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(UserID(r.Context())))
	})

	t.Run("Missing Header", func(t *testing.T) {
		handler := RequireAuth(stubVerifier{userID: "u1"})(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/playlists", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("Wrong Scheme", func(t *testing.T) {
		handler := RequireAuth(stubVerifier{userID: "u1"})(next)
		req := httptest.NewRequest("GET", "/playlists", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("Invalid Token", func(t *testing.T) {
		handler := RequireAuth(stubVerifier{err: errors.New("bad token")})(next)
		req := httptest.NewRequest("GET", "/playlists", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("Valid Token", func(t *testing.T) {
		handler := RequireAuth(stubVerifier{userID: "u1"})(next)
		req := httptest.NewRequest("GET", "/playlists", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != "u1" {
			t.Errorf("expected user id 'u1' in context, got %q", rec.Body.String())
		}
	})
}

func TestUserIDWithoutAuth(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if id := UserID(req.Context()); id != "" {
		t.Errorf("expected empty user id, got %q", id)
	}
}
