package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"couplesite/internal/config"
	"couplesite/internal/database"
	"couplesite/internal/database/migration"
	handlers "couplesite/internal/http/handler"
	"couplesite/internal/http/middleware"
	"couplesite/internal/otel"
	"couplesite/internal/repository"
	filerepo "couplesite/internal/repository/file"
	"couplesite/internal/repository/memory"
	"couplesite/internal/repository/postgres"
	"couplesite/internal/service"
	"couplesite/internal/storage"
)

// uploadsPublicPath is where locally stored recordings are served from; the
// fs blob backend resolves playback URLs under it.
const uploadsPublicPath = "/public/uploads"

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Metadata store: constructed once from configuration and injected.
	// Handlers never branch on the backend.
	var (
		db       *sql.DB
		noteRepo repository.NoteRepository
		vmRepo   repository.VoiceMailRepository
	)
	switch cfg.MetadataBackend {
	case "postgres":
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		noteRepo = postgres.NewNotePostgres(db)
		vmRepo = postgres.NewVoiceMailPostgres(db)
	case "file":
		store, err := filerepo.NewStore(cfg.DataFile)
		if err != nil {
			log.Fatalf("failed to open data file: %v", err)
		}
		noteRepo = store.Notes()
		vmRepo = store.VoiceMails()
	case "memory":
		// Records live only for the lifetime of the process. Intentional:
		// the bucket deployment keeps nothing durable but the blobs.
		noteRepo = memory.NewNoteMemory()
		vmRepo = memory.NewVoiceMailMemory()
	default:
		log.Fatalf("unknown metadata backend: %q", cfg.MetadataBackend)
	}

	// Blob store: local disk served statically, or an S3-compatible bucket.
	var blobs storage.BlobStorage
	switch cfg.StorageBackend {
	case "minio":
		blobs, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.Fatalf("failed to initialize object storage: %v", err)
		}
	case "fs":
		blobs, err = storage.NewFilesystem(cfg.UploadsDir, uploadsPublicPath)
		if err != nil {
			log.Fatalf("failed to initialize local storage: %v", err)
		}
	default:
		log.Fatalf("unknown storage backend: %q", cfg.StorageBackend)
	}

	noteSvc := service.NewNoteService(noteRepo)
	vmSvc := service.NewVoiceMailService(blobs, vmRepo, cfg.Upload.MaxBytes, cfg.Upload.RetentionLimit)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Body limit sits above the upload ceiling so the handler, not the
		// transport, produces the rejection.
		BodyLimit: int(cfg.Upload.MaxBytes) + 1024*1024,
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())

	// Playback for locally stored recordings.
	if cfg.StorageBackend == "fs" {
		app.Static(uploadsPublicPath, cfg.UploadsDir)
	}

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, noteSvc, vmSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
