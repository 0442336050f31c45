package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/akshat/playlist-manager/internal/auth"
	"github.com/akshat/playlist-manager/internal/catalog"
	"github.com/akshat/playlist-manager/internal/config"
	"github.com/akshat/playlist-manager/internal/middleware"
	"github.com/akshat/playlist-manager/internal/playlist"
	"github.com/akshat/playlist-manager/internal/store"
	"github.com/akshat/playlist-manager/internal/token"
	"github.com/akshat/playlist-manager/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)
	db := mongoClient.Database(cfg.MongoDB)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("mongo indexes", zap.Error(err))
	}
	users := store.NewUserStore(db)
	playlists := store.NewPlaylistStore(db)

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// ── MinIO ────────────────────────────────────────────────
	covers, err := store.NewCoverStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Fatal("minio connect", zap.Error(err))
	}

	// ── Catalog ──────────────────────────────────────────────
	spotify := catalog.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifySecretKey, cfg.SpotifyMarket)
	searcher := catalog.NewCachedSearcher(spotify, rdb)

	// ── Tokens ───────────────────────────────────────────────
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(users, tokens, logger)
	playlistHandler := playlist.NewHandler(playlists, covers, searcher, logger)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes (public)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Playlist routes (protected)
	r.Route("/playlists", func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Post("/", playlistHandler.Create)
		r.Get("/", playlistHandler.List)
		r.Put("/{id}", playlistHandler.Update)
		r.Delete("/{id}", playlistHandler.Delete)
		r.Post("/{id}/songs", playlistHandler.AttachSong)
		r.Put("/{id}/cover", playlistHandler.UploadCover)
		r.Get("/{id}/cover", playlistHandler.DownloadCover)
	})

	// Catalog search (protected)
	r.Route("/songs", func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/search", playlistHandler.SearchSongs)
	})

	// Embedded client
	r.Handle("/*", web.Handler())

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
