package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
	"github.com/jipsa-lab/cat-meal-advisor/internal/httpapi"
	"github.com/jipsa-lab/cat-meal-advisor/internal/logger"
	"github.com/jipsa-lab/cat-meal-advisor/internal/recommend"
	"github.com/jipsa-lab/cat-meal-advisor/internal/storage"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Run:   runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "cat-meal-advisor",
	})

	weights := recommend.DefaultWeights()
	if cfg.Catalog.WeightsPath != "" {
		weights, err = recommend.LoadWeightsFromFile(cfg.Catalog.WeightsPath)
		if err != nil {
			exitErr("load weights", err)
		}
	}

	var store *storage.SQLiteStore
	var catalog []domain.CatalogItem

	if cfg.Catalog.DBPath != "" {
		store, err = storage.OpenSQLite(cfg.Catalog.DBPath)
		if err != nil {
			exitErr("open db", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(); err != nil {
			exitErr("ensure schema", err)
		}
		if err := seedStore(store, cfg.Catalog.Path, log); err != nil {
			exitErr("seed db", err)
		}
		catalog, err = store.List()
		if err != nil {
			exitErr("load catalog from db", err)
		}
	} else {
		catalog, err = storage.LoadCatalogFromFile(cfg.Catalog.Path)
		if err != nil {
			exitErr("load catalog", err)
		}
	}

	srv := httpapi.NewServer(httpapi.Options{
		Engine:    recommend.NewEngine(weights),
		Catalog:   catalog,
		Store:     store,
		Log:       log,
		TopFood:   cfg.Ranking.TopFood,
		TopTreats: cfg.Ranking.TopTreats,
	})

	log.Info("listening", map[string]any{"address": cfg.HTTP.Address, "catalog_items": len(catalog)})
	if err := http.ListenAndServe(cfg.HTTP.Address, srv.Routes()); err != nil {
		exitErr("serve", err)
	}
}

// seedStore loads the file catalog into an empty database. A populated
// database is left untouched.
func seedStore(store *storage.SQLiteStore, path string, log logger.Logger) error {
	if path == "" {
		return nil
	}
	n, err := store.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	items, err := storage.LoadCatalogFromFile(path)
	if err != nil {
		return err
	}
	if err := store.UpsertMany(items); err != nil {
		return err
	}
	log.Info("seeded catalog", map[string]any{"path": path, "items": len(items)})
	return nil
}
