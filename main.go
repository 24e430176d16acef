package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"google.golang.org/api/option"

	"github.com/danielhkuo/keepsake/auth"
	"github.com/danielhkuo/keepsake/blob"
	"github.com/danielhkuo/keepsake/carousel"
	"github.com/danielhkuo/keepsake/cliparse"
	"github.com/danielhkuo/keepsake/db"
	"github.com/danielhkuo/keepsake/gallery"
	"github.com/danielhkuo/keepsake/kv"
	"github.com/danielhkuo/keepsake/logging"
	"github.com/danielhkuo/keepsake/middleware"
	"github.com/danielhkuo/keepsake/playlist"
	"github.com/danielhkuo/keepsake/router"
	"github.com/danielhkuo/keepsake/store"
	"github.com/danielhkuo/keepsake/vault"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.HashAnswers {
		if err := hashAnswers(cfg, os.Stdout); err != nil {
			slog.Error("Hashing answers failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if _, err := logging.NewLogger(logging.Config{
		Level:      cfg.LogLevel,
		Dir:        cfg.LogDir,
		MaxSizeMB:  50,
		MaxBackups: 5,
		MaxAgeDays: 14,
		Compress:   true,
	}); err != nil {
		slog.Error("logger setup failed", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func answerPolicy(cfg cliparse.Config) vault.BlankPolicy {
	if cfg.AllowBlankAnswers {
		return vault.AcceptBlank
	}
	return vault.RejectBlank
}

// hashAnswers writes the answers file with every plaintext answer replaced by
// its digests, so the deployed file holds no answers.
func hashAnswers(cfg cliparse.Config, w io.Writer) error {
	v, err := vault.LoadFile(cfg.AnswersFile, answerPolicy(cfg))
	if err != nil {
		return err
	}
	out, err := v.MarshalDigests()
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write digests: %w", err)
	}
	return nil
}

func run(cfg cliparse.Config) error {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Answers
	v, err := vault.LoadFile(cfg.AnswersFile, answerPolicy(cfg))
	if err != nil {
		return err
	}
	slog.Info("Answers loaded", "questions", len(v.Keys()))

	// Database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if err := db.CreateSchema(dbConn); err != nil {
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)
	records := store.NewSQLStore(dbConn)

	// Blob storage
	var blobs blob.Store
	var uploads http.Handler
	switch cfg.BlobBackend {
	case cliparse.BlobGCS:
		var opts []option.ClientOption
		if cfg.GCSCredentials != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentials))
		}
		gcs, err := blob.NewGCSStore(ctx, cfg.GCSBucket, opts...)
		if err != nil {
			return err
		}
		defer gcs.Close()
		blobs = gcs
		slog.Info("Using Cloud Storage", "bucket", cfg.GCSBucket)
	default:
		local, err := blob.NewLocalStore(cfg.BlobDir, cfg.PublicBaseURL)
		if err != nil {
			return err
		}
		blobs = local
		uploads = local.Handler()
		slog.Info("Using local blob storage", "dir", local.Root(), "public_url", cfg.PublicBaseURL)
	}

	// Shared site state
	var state kv.Store = kv.NewMemoryStore()
	if cfg.ValkeyURL != "" {
		vs, err := kv.NewValkeyStore(cfg.ValkeyURL, "keepsake:")
		if err != nil {
			return err
		}
		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err = vs.Ping(pingCtx)
		pingCancel()
		if err != nil {
			vs.Close()
			return err
		}
		state = vs
		slog.Info("Using Valkey for site state")
	}
	defer state.Close()

	// Carousel sessions and gallery
	static, err := carousel.LoadSlides(cfg.SlidesFile)
	if err != nil {
		return err
	}
	fixed, err := gallery.LoadFixedNotes(cfg.SlidesFile)
	if err != nil {
		return err
	}

	// A visitor's session lives as long as their unlock token
	carousels := carousel.NewRegistry(auth.UnlockTTL, carousel.Options{
		Interval:    cfg.AutoAdvance,
		ResumeDelay: cfg.ResumeDelay,
		OnChange: func(index int) {
			slog.Debug("carousel moved", "index", index)
		},
	})
	defer carousels.Close()
	go carousels.SweepEvery(ctx, time.Minute)

	g := gallery.New(records, blobs, carousels, static)
	g.SetFixedNotes(fixed)
	if err := g.Load(ctx); err != nil {
		return err
	}
	slog.Info("Gallery loaded", "slides", len(carousels.Slides()), "notes", len(g.Notes()))

	queue := playlist.NewQueue(records, playlist.NewOEmbedFetcher())
	if err := queue.Load(ctx); err != nil {
		return err
	}

	// Create router
	mux := router.NewRouter(cfg, router.Deps{
		Vault:     v,
		Carousels: carousels,
		Gallery:   g,
		Queue:     queue,
		State:     state,
		Uploads:   uploads,
		Limiter:   middleware.NewAttemptLimiter(cfg.UnlockRate, cfg.UnlockSecret),
	})

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("Server closed")
	return nil
}
