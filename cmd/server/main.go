package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/olalere-abiodun/assignmentSubmission/internal/assignment"
	"github.com/olalere-abiodun/assignmentSubmission/internal/auth"
	"github.com/olalere-abiodun/assignmentSubmission/internal/config"
	"github.com/olalere-abiodun/assignmentSubmission/internal/course"
	"github.com/olalere-abiodun/assignmentSubmission/internal/enrollment"
	"github.com/olalere-abiodun/assignmentSubmission/internal/server"
	"github.com/olalere-abiodun/assignmentSubmission/internal/store"
	"github.com/olalere-abiodun/assignmentSubmission/internal/submission"
)

// relational is everything the services need from the SQL side.
type relational interface {
	auth.UserStore
	course.Store
	enrollment.Store
	assignment.Store
}

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx := context.Background()

	var (
		records relational
		docs    submission.DocumentStore
		files   submission.FileStore
		revoked auth.Revocations
	)

	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on exit")
		records = store.NewMemoryStore(nil)
		docs = store.NewMemorySubmissions()
		files = store.NewMemoryFiles()
		revoked = store.NewMemoryRevocations(nil)

	default:
		// ── PostgreSQL ────────────────────────────────────────────
		pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			fatal(logger, "postgres connect", err)
		}
		defer pgPool.Close()
		pgStore := store.NewPostgresStore(pgPool)
		if err := pgStore.Migrate(ctx); err != nil {
			fatal(logger, "postgres migrate", err)
		}
		records = pgStore

		// ── MongoDB ──────────────────────────────────────────────
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			fatal(logger, "mongo connect", err)
		}
		defer mongoClient.Disconnect(ctx)
		mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			fatal(logger, "mongo indexes", err)
		}
		docs = mongoStore

		// ── Redis ────────────────────────────────────────────────
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			fatal(logger, "redis connect", err)
		}
		defer rdb.Close()
		revoked = auth.NewRevocationStore(rdb)

		// ── MinIO ────────────────────────────────────────────────
		minioStore, err := store.NewMinioStore(ctx, store.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			fatal(logger, "minio connect", err)
		}
		files = minioStore
	}

	// ── Services ─────────────────────────────────────────────
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), nil)
	accounts := auth.NewService(records, revoked, auth.NewHasher(cfg.BcryptCost), tokens, cfg.TokenTTL)
	enrollments := enrollment.NewManager(records)

	// ── Router ───────────────────────────────────────────────
	router := server.NewRouter(server.Deps{
		Accounts:      accounts,
		Auth:          auth.NewHandler(accounts, logger),
		Courses:       course.NewHandler(course.NewService(records), logger),
		Enrollments:   enrollment.NewHandler(enrollments, logger),
		Assignments:   assignment.NewHandler(assignment.NewService(records), logger),
		Submissions:   submission.NewHandler(submission.NewService(records, enrollments, docs, files, nil, logger), cfg.MaxUploadBytes, logger),
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        logger,
		RequestLogger: true,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("backend listening", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
