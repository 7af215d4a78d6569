package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
	"github.com/jipsa-lab/cat-meal-advisor/internal/recommend"
	"github.com/jipsa-lab/cat-meal-advisor/internal/storage"
)

var (
	recProfileFile string
	recCatalogFile string
	recWeightsFile string
	recTopFood     int
	recTopTreats   int
)

func init() {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run a one-shot recommendation from files",
		Long:  "Run a one-shot recommendation: reads a profile JSON file and a catalog file, prints the ranked result as JSON.",
		Run:   runRecommend,
	}

	cmd.Flags().StringVar(&recProfileFile, "profile", "", "Profile JSON file (required)")
	cmd.Flags().StringVar(&recCatalogFile, "catalog", "", "Catalog CSV or JSON file (default: catalog.path from config)")
	cmd.Flags().StringVar(&recWeightsFile, "weights", "", "Scoring weights JSON file (default: built-in weights)")
	cmd.Flags().IntVar(&recTopFood, "top-food", 0, "Number of food results (default: ranking.topFood from config)")
	cmd.Flags().IntVar(&recTopTreats, "top-treats", 0, "Number of treat results (default: ranking.topTreats from config)")
	_ = cmd.MarkFlagRequired("profile")

	RootCmd.AddCommand(cmd)
}

func runRecommend(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}

	catalogFile := recCatalogFile
	if catalogFile == "" {
		catalogFile = cfg.Catalog.Path
	}
	weightsFile := recWeightsFile
	if weightsFile == "" {
		weightsFile = cfg.Catalog.WeightsPath
	}

	data, err := os.ReadFile(recProfileFile)
	if err != nil {
		exitErr("read profile", err)
	}
	var profile domain.PetProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		exitErr("parse profile", err)
	}

	catalog, err := storage.LoadCatalogFromFile(catalogFile)
	if err != nil {
		exitErr("load catalog", err)
	}

	weights := recommend.DefaultWeights()
	if weightsFile != "" {
		weights, err = recommend.LoadWeightsFromFile(weightsFile)
		if err != nil {
			exitErr("load weights", err)
		}
	}

	opts := recommend.Options{TopFood: recTopFood, TopTreats: recTopTreats}
	if opts.TopFood <= 0 {
		opts.TopFood = cfg.Ranking.TopFood
	}
	if opts.TopTreats <= 0 {
		opts.TopTreats = cfg.Ranking.TopTreats
	}

	rec := recommend.NewEngine(weights).Recommend(profile, catalog, opts)

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		exitErr("encode result", err)
	}
	fmt.Println(string(out))
}
