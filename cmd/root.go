package cmd

import (
	"os"

	"github.com/hametuha/hamelp-be/config"
	"github.com/hametuha/hamelp-be/database"
	"github.com/hametuha/hamelp-be/repository"
	"github.com/hametuha/hamelp-be/service"
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hamelp-be",
	Short: "FAQ backend with AI overview",
	Long: `Backend for the Hamelp FAQ system.

Serves FAQ content and answers natural-language questions by building a
bounded catalog of all published FAQs and delegating answer generation
to a configured LLM provider.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}

// loadCatalogService wires the catalog dependencies shared by the
// rebuild and status commands.
func loadCatalogService() (service.CatalogService, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}

	mongoClient, err := database.NewMongoClient(cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	redisClient, err := database.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}

	faqRepo := repository.NewFaqRepo(mongoClient.Database(cfg.MongoDB).Collection("faqs"))
	catalogStore := database.NewRedisCatalogStore(redisClient)
	return service.NewCatalogService(faqRepo, catalogStore, cfg.SiteURL, cfg.Catalog), nil
}
