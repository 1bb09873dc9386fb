package main

import (
	"context"
	"log"

	"statfolio/adapters/excel"
	"statfolio/adapters/postgres"
	"statfolio/app"
	approxanalysis "statfolio/internal/analysis/approx"
	tradeanalysis "statfolio/internal/analysis/trade"
	"statfolio/internal/config"
	contentstore "statfolio/internal/content"
	"statfolio/ports"
	"statfolio/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var opts []approxanalysis.Option
	if appConfig.Analysis.ContinuityCorrection {
		opts = append(opts, approxanalysis.WithContinuityCorrection())
	}
	analyzer := approxanalysis.NewAnalyzer(opts...)

	var flows ports.FlowSource
	if appConfig.Data.TradeFile != "" {
		log.Printf("Using trade workbook: %s", appConfig.Data.TradeFile)
		flows = excel.NewFlowSource(appConfig.Data.TradeFile, excel.DefaultFlowMapping())
	} else {
		log.Println("No trade workbook configured, using bundled sample data")
		flows = tradeanalysis.NewStaticSource(tradeanalysis.SampleFlows())
	}

	repo, err := buildContentRepository(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize content repository: %v", err)
	}

	reports := app.NewReportService(analyzer, flows, appConfig.Analysis.RuleOfThumb)

	site, err := ui.NewApp(ui.Config{Repo: repo, Reports: reports})
	if err != nil {
		log.Fatalf("Failed to create UI app: %v", err)
	}

	log.Printf("Starting site on http://localhost:%s", appConfig.Server.Port)
	log.Fatal(site.Start(":" + appConfig.Server.Port))
}

// buildContentRepository picks postgres when configured, otherwise the
// embedded store. A fresh database is seeded from the embedded content so
// the site never starts empty.
func buildContentRepository(appConfig *config.Config) (ports.ContentRepository, error) {
	store, err := contentstore.NewStore()
	if err != nil {
		return nil, err
	}
	if appConfig.Database.URL == "" {
		return store, nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	repo := postgres.NewContentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	posts, err := repo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		log.Println("Seeding empty content database from embedded content")
		if err := seedContent(ctx, repo, store); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func seedContent(ctx context.Context, writer ports.ContentWriter, store *contentstore.Store) error {
	profile, err := store.Profile(ctx)
	if err != nil {
		return err
	}
	if err := writer.SaveProfile(ctx, profile); err != nil {
		return err
	}

	pubs, err := store.ListPublications(ctx)
	if err != nil {
		return err
	}
	for _, pub := range pubs {
		if err := writer.SavePublication(ctx, pub); err != nil {
			return err
		}
	}

	posts, err := store.ListPosts(ctx)
	if err != nil {
		return err
	}
	for _, post := range posts {
		if err := writer.SavePost(ctx, post); err != nil {
			return err
		}
	}
	return nil
}
