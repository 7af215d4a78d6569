package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jipsa-lab/cat-meal-advisor/internal/storage"
)

var (
	importDBPath string
	importFile   string
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a catalog file into a SQLite database",
		Long:  "Import a CSV or JSON catalog file into a SQLite database. Rows already present (by id) are kept.",
		Run:   runImport,
	}

	cmd.Flags().StringVar(&importDBPath, "db", "", "SQLite database path (default: catalog.dbPath from config)")
	cmd.Flags().StringVar(&importFile, "file", "", "Catalog file to import (default: catalog.path from config)")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	dbPath, file := importDBPath, importFile
	if dbPath == "" || file == "" {
		cfg, err := loadConfig()
		if err != nil {
			exitErr("load config", err)
		}
		if dbPath == "" {
			dbPath = cfg.Catalog.DBPath
		}
		if file == "" {
			file = cfg.Catalog.Path
		}
	}
	if dbPath == "" {
		exitErr("import", fmt.Errorf("no database path; pass --db or set catalog.dbPath"))
	}
	if file == "" {
		exitErr("import", fmt.Errorf("no catalog file; pass --file or set catalog.path"))
	}

	items, err := storage.LoadCatalogFromFile(file)
	if err != nil {
		exitErr("load catalog", err)
	}

	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		exitErr("open db", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(); err != nil {
		exitErr("ensure schema", err)
	}
	if err := store.UpsertMany(items); err != nil {
		exitErr("import", err)
	}

	total, err := store.Count()
	if err != nil {
		exitErr("count", err)
	}
	fmt.Printf(`{"ok":true,"imported":%d,"total":%d}`+"\n", len(items), total)
}
