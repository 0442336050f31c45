package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akshat/playlist-manager/internal/catalog"
	"github.com/akshat/playlist-manager/internal/middleware"
	"github.com/akshat/playlist-manager/internal/models"
	"github.com/akshat/playlist-manager/internal/store"
)

const (
	defaultLimit  = 10
	searchTimeout = 5 * time.Second
	maxCoverBytes = 5 << 20
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Store defines the interface for playlist persistence. Every method is
// owner-scoped: a playlist belonging to someone else reports
// store.ErrNotFound.
type Store interface {
	Insert(ctx context.Context, ownerID, name, description string) (*models.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string, page, limit int) ([]models.Playlist, int, error)
	GetByID(ctx context.Context, id, ownerID string) (*models.Playlist, error)
	Update(ctx context.Context, id, ownerID, name, description string) (*models.Playlist, error)
	Delete(ctx context.Context, id, ownerID string) (*models.Playlist, error)
	AddSong(ctx context.Context, id, ownerID string, song models.Song) (*models.Playlist, error)
	SetCoverKey(ctx context.Context, id, ownerID, key string) error
}

// CoverStore defines the interface for cover image storage.
type CoverStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}

// Handler holds playlist and song-search HTTP handlers.
type Handler struct {
	store   Store
	covers  CoverStore
	catalog catalog.Searcher
	log     *zap.Logger
}

func NewHandler(store Store, covers CoverStore, searcher catalog.Searcher, log *zap.Logger) *Handler {
	return &Handler{store: store, covers: covers, catalog: searcher, log: log}
}

// pageParams reads page and limit from the query string, defaulting to
// 1 and 10.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// Create persists a new playlist with an empty song list.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())

	var req models.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Description == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and description are required"})
		return
	}

	p, err := h.store.Insert(r.Context(), ownerID, req.Name, req.Description)
	if err != nil {
		h.log.Error("create playlist", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error creating playlist"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"playlist": p})
}

// List returns one page of the caller's playlists.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	page, limit := pageParams(r)

	playlists, total, err := h.store.ListByOwner(r.Context(), ownerID, page, limit)
	if err != nil {
		h.log.Error("list playlists", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error retrieving playlists"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"playlists":  playlists,
		"pagination": models.NewPagination(total, page, limit),
	})
}

// Update sets a playlist's name and description.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	var req models.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" || req.Description == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and description are required"})
		return
	}

	p, err := h.store.Update(r.Context(), id, ownerID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist not found"})
			return
		}
		h.log.Error("update playlist", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error updating playlist"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"playlist": p})
}

// Delete removes a playlist and its cover image if one exists.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	p, err := h.store.Delete(r.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist not found"})
			return
		}
		h.log.Error("delete playlist", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error deleting playlist"})
		return
	}

	if p.CoverKey != "" {
		if err := h.covers.Remove(r.Context(), p.CoverKey); err != nil {
			h.log.Warn("remove cover object", zap.String("key", p.CoverKey), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"playlist": p})
}

// AttachSong appends a catalog track snapshot to the playlist's song
// list.
func (h *Handler) AttachSong(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	var req models.AttachSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.SongID == "" || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "songId and title are required"})
		return
	}

	song := models.Song{
		ID:        uuid.NewString(),
		SpotifyID: req.SongID,
		Title:     req.Title,
		Artist:    req.Artist,
		Album:     req.Album,
		AddedAt:   time.Now(),
	}

	p, err := h.store.AddSong(r.Context(), id, ownerID, song)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist not found"})
			return
		}
		h.log.Error("attach song", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error adding song to playlist"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"playlist": p})
}

// SearchSongs proxies a paginated track search to the catalog.
func (h *Handler) SearchSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	page, limit := pageParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), searchTimeout)
	defer cancel()

	tracks, total, err := h.catalog.Search(ctx, query, (page-1)*limit, limit)
	if err != nil {
		h.log.Error("catalog search", zap.String("query", query), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "error fetching songs from catalog"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracks":     tracks,
		"pagination": models.NewPagination(total, page, limit),
	})
}

// UploadCover stores the request body as the playlist's cover image.
func (h *Handler) UploadCover(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	if _, err := h.store.GetByID(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist not found"})
			return
		}
		h.log.Error("get playlist", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error uploading cover"})
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCoverBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "cover image too large"})
			return
		}
		h.log.Error("read cover body", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error uploading cover"})
		return
	}
	if len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cover image is required"})
		return
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	key := ownerID + "/" + id
	if err := h.covers.Put(r.Context(), key, data, contentType); err != nil {
		h.log.Error("store cover object", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error uploading cover"})
		return
	}
	if err := h.store.SetCoverKey(r.Context(), id, ownerID, key); err != nil {
		h.log.Error("set cover key", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error uploading cover"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "cover updated"})
}

// DownloadCover streams the playlist's cover image.
func (h *Handler) DownloadCover(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	id := chi.URLParam(r, "id")

	p, err := h.store.GetByID(r.Context(), id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "playlist not found"})
			return
		}
		h.log.Error("get playlist", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error downloading cover"})
		return
	}
	if p.CoverKey == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cover not available"})
		return
	}

	data, contentType, err := h.covers.Get(r.Context(), p.CoverKey)
	if err != nil {
		h.log.Error("read cover object", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error downloading cover"})
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
