package main

import (
	"context"
	"fmt"

	"github.com/ayudin/go-course-keeper/internal/adapter"
	"github.com/ayudin/go-course-keeper/internal/cache"
	"github.com/ayudin/go-course-keeper/internal/config"
	"github.com/ayudin/go-course-keeper/internal/crypto"
	"github.com/ayudin/go-course-keeper/internal/logger"
	"github.com/ayudin/go-course-keeper/internal/repository"
	"github.com/ayudin/go-course-keeper/internal/service"
	"github.com/ayudin/go-course-keeper/internal/tui"
	"github.com/ayudin/go-course-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("course-keeper-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := cache.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open local cache database")
	}
	defer db.Close()
	store := cache.NewStore(db, repository.Namespaces(), log)

	remote := adapter.NewHTTPRemoteSource(cfg.Adapter, log)

	credentials, err := crypto.NewFileCredentialStore(cfg.Storage.CredentialsDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open credential store")
	}

	services := service.NewClientServices(store, remote, credentials, log)

	courseListStale := func(ctx context.Context) bool {
		key := repository.NamespaceCourses + "/" + repository.CourseListScope
		return store.IsExpired(ctx, key, cfg.Cache.MaxAge)
	}
	autoSync := workers.NewAutoSyncJob(services.Orchestrator, courseListStale, log)
	autoSync.Start(ctx, cfg.Workers.SyncInterval)
	defer autoSync.Stop()

	ui := tui.New(services, log)
	if err := ui.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
