package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/studyscope/studyscope-backend/internal/analytics"
	"github.com/studyscope/studyscope-backend/internal/config"
	"github.com/studyscope/studyscope-backend/internal/database"
	"github.com/studyscope/studyscope-backend/internal/logger"
	"github.com/studyscope/studyscope-backend/internal/model"
	"github.com/studyscope/studyscope-backend/internal/repository"
	"github.com/studyscope/studyscope-backend/internal/repository/memory"
	"github.com/studyscope/studyscope-backend/internal/service"
	"github.com/studyscope/studyscope-backend/internal/storage"
	"github.com/studyscope/studyscope-backend/internal/worker"
)

func main() {
	var (
		college string
		dryRun  bool
		gender  string
	)
	flag.StringVar(&college, "college", "", "College the gradesheet belongs to (required)")
	flag.BoolVar(&dryRun, "dry-run", false, "Parse in memory and print specialization analytics instead of storing")
	flag.StringVar(&gender, "gender", "all", "Gender filter for -dry-run analytics")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 || college == "" {
		printUsage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to read spreadsheet")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if dryRun {
		if err := runDryRun(ctx, cfg, log, data, path, college, gender); err != nil {
			log.Fatal().Err(err).Msg("Dry run failed")
		}
		return
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	archive, err := storage.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open spreadsheet storage")
	}

	ingestService := service.NewIngestService(
		repository.NewUploadRepository(pool), archive, worker.NewPurgeQueue(rdb), 0, log,
	)

	result, err := ingestService.Ingest(ctx, data, path, college)
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("Imported %d students as upload %s\n", result.RecordCount, result.UploadID)
}

// runDryRun ingests into an in-memory store and prints the analytics it would produce.
func runDryRun(ctx context.Context, cfg *config.Config, log zerolog.Logger, data []byte, path, college, gender string) error {
	dir, err := os.MkdirTemp("", "import-sheet-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	archive, err := storage.NewLocalStorage(dir)
	if err != nil {
		return err
	}

	store := memory.New()
	ingestService := service.NewIngestService(store, archive, discardQueue{}, 0, log)
	result, err := ingestService.Ingest(ctx, data, path, college)
	if err != nil {
		return err
	}

	opts := analytics.Options{CourseMaxMarks: cfg.CourseMaxMarks}
	analyticsService := service.NewAnalyticsService(store, store.Students(), opts, model.ParseGenderMatchMode(cfg.GenderMatchMode))
	summaries, err := analyticsService.GetSpecializationAnalytics(ctx, model.AnalyticsQuery{
		Upload: result.UploadID.String(),
		Gender: gender,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"record_count":    result.RecordCount,
		"specializations": summaries,
	})
}

// discardQueue drops purge requests; the dry-run archive is removed on exit anyway.
type discardQueue struct{}

func (discardQueue) Enqueue(context.Context, string) error { return nil }

func printUsage() {
	fmt.Println("Usage: import-sheet -college <name> [flags] <file.xlsx>")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
