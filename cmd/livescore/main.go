package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/tojlon/Soccer-Score/httpapp"
	"github.com/tojlon/Soccer-Score/internal/api/http/handlers"
	"github.com/tojlon/Soccer-Score/internal/api/table"
	"github.com/tojlon/Soccer-Score/internal/application/service"
	"github.com/tojlon/Soccer-Score/internal/config"
	"github.com/tojlon/Soccer-Score/internal/domain/models"
	"github.com/tojlon/Soccer-Score/internal/domain/ports"
	journalpg "github.com/tojlon/Soccer-Score/internal/infrastructures/db/postgres/repo"
	budgetredis "github.com/tojlon/Soccer-Score/internal/infrastructures/db/redis"
	"github.com/tojlon/Soccer-Score/internal/infrastructures/db/tracing"
	"github.com/tojlon/Soccer-Score/internal/infrastructures/footballdata"
	fdclient "github.com/tojlon/Soccer-Score/internal/infrastructures/footballdata/http/client"
	"github.com/tojlon/Soccer-Score/internal/terminal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "soccer-score"

func main() {
	once := flag.Bool("once", false, "print the board for one league and exit")
	league := flag.String("league", "", "league id, code or name for -once")

	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	location, err := time.LoadLocation(cfg.Display.Timezone)
	if err != nil {
		log.Fatal("failed to load display timezone", zap.Error(err), zap.String("timezone", cfg.Display.Timezone))
	}

	shutdownTracer, err := tracing.InitTracer(serviceName, cfg.Jaeger)
	if err != nil {
		log.Fatal("failed to init tracer", zap.Error(err))
	}
	if shutdownTracer != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				log.Warn("failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var budget ports.RequestBudget
	if cfg.Quota.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("failed to close redis client", zap.Error(err))
			}
		}()
		budget = budgetredis.NewRequestBudget(redisClient, cfg.Quota.KeyPrefix, cfg.Quota.RequestsPerMinute, cfg.Quota.Window)
	}

	var journal ports.FetchJournal
	if cfg.DB.Enabled() {
		repo, err := journalpg.New(ctx, cfg.DB.DatabaseURL())
		if err != nil {
			log.Fatal("failed to connect fetch journal database", zap.Error(err))
		}
		defer repo.Close()
		journal = repo
	}

	client := fdclient.NewClient(cfg.FootballData.BaseURL, cfg.FootballData.APIKey, fdclient.NewHTTPClient(cfg.FootballData.Timeout))
	source := footballdata.NewSource(client, location)
	matchService := service.NewMatchService(log, source, budget, journal)

	if *once {
		if err := runOnce(ctx, os.Stdout, matchService, *league, table.ZoneLabel(location)); err != nil {
			log.Error("board failed", zap.Error(err))
			_ = log.Sync()
			os.Exit(1)
		}
		return
	}

	log.Info("soccer-score starting",
		zap.String("http_addr", fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)),
		zap.String("timezone", location.String()),
		zap.Bool("quota", budget != nil),
		zap.Bool("journal", journal != nil),
	)

	matchHandler := handlers.NewMatchHandler(log, matchService, location, cfg.Display.DebugEnabled, cfg.HTTP.RequestTimeout)
	app := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, httpapp.Timeouts{
		Read:     cfg.HTTP.ReadTimeout,
		Write:    cfg.HTTP.WriteTimeout,
		Shutdown: cfg.HTTP.ShutdownTimeout,
	}, func(mux *http.ServeMux) {
		mux.HandleFunc("/", matchHandler.Dashboard)
		mux.HandleFunc("/api/v1/matches", matchHandler.GetMatches)
		mux.HandleFunc("/api/v1/competitions", matchHandler.GetCompetitions)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		app.Stop()
	case err := <-errCh:
		if err != nil {
			log.Error("http server stopped", zap.Error(err))
		}
	}
}

func runOnce(ctx context.Context, out io.Writer, matches handlers.MatchReader, league, zoneLabel string) error {
	competition := models.DefaultCompetition()
	if strings.TrimSpace(league) != "" {
		found, ok := models.LookupCompetition(league)
		if !ok {
			return fmt.Errorf("unknown league %q", league)
		}
		competition = found
	}

	printer := terminal.NewPrinter(out)

	feed, err := matches.GetMatches(ctx, competition.ID)
	if err != nil {
		_ = printer.Print(competition, table.Failed(err, zoneLabel), nil)
		return err
	}

	return printer.Print(competition, table.Render(feed.Matches, zoneLabel), feed.RowErrors)
}

func setupLogger(level string) *zap.Logger {
	zapLevel := parseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
