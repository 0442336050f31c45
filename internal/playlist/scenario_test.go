package playlist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/akshat/playlist-manager/internal/auth"
	"github.com/akshat/playlist-manager/internal/middleware"
	"github.com/akshat/playlist-manager/internal/models"
	"github.com/akshat/playlist-manager/internal/store"
	"github.com/akshat/playlist-manager/internal/token"
)

type memUsers struct {
	byEmail map[string]*models.User
}

func (s *memUsers) CreateUser(_ context.Context, username, email, hashedPw string) (*models.User, error) {
	if _, ok := s.byEmail[email]; ok {
		return nil, store.ErrDuplicateEmail
	}
	u := &models.User{
		ID:       primitive.NewObjectID(),
		Username: username,
		Email:    email,
		Password: hashedPw,
	}
	s.byEmail[email] = u
	return u, nil
}

func (s *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

// TestRegisterLoginCreateAttach walks the whole flow against the real
// router wiring: register, login, create a playlist, attach a song.
func TestRegisterLoginCreateAttach(t *testing.T) {
	tokens := token.NewService("scenario-secret", token.DefaultTTL)
	users := &memUsers{byEmail: map[string]*models.User{}}
	playlists := &memStore{}

	authHandler := auth.NewHandler(users, tokens, zap.NewNop())
	playlistHandler := NewHandler(playlists, newMemCovers(), &stubSearcher{}, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
	r.Route("/playlists", func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Post("/", playlistHandler.Create)
		r.Get("/", playlistHandler.List)
		r.Post("/{id}/songs", playlistHandler.AttachSong)
	})

	post := func(path, bearer, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", path, strings.NewReader(body))
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	// Register
	rec := post("/auth/register", "",
		`{"username":"alice","email":"a@x.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Login
	rec = post("/auth/login", "", `{"email":"a@x.com","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var loginBody map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&loginBody); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	bearer := loginBody["token"]
	if bearer == "" {
		t.Fatal("expected a token from login")
	}

	// Create playlist
	rec = post("/playlists", bearer, `{"name":"Road Trip","description":"Driving songs"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodePlaylist(t, rec)
	if len(created.Songs) != 0 {
		t.Fatalf("expected a fresh playlist with no songs, got %d", len(created.Songs))
	}

	// Attach song
	rec = post("/playlists/"+created.ID.Hex()+"/songs", bearer,
		`{"songId":"sp123","title":"Song A","artist":"Artist A","album":"Album A"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("attach: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodePlaylist(t, rec)
	if len(updated.Songs) != 1 || updated.Songs[0].Title != "Song A" {
		t.Fatalf("expected one attached song titled 'Song A', got %+v", updated.Songs)
	}
}
