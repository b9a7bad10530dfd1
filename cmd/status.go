package cmd

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd reports the current catalog state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show FAQ catalog status",
	Run: func(cmd *cobra.Command, args []string) {
		catalogService, err := loadCatalogService()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}

		catalog, err := catalogService.GetCatalog(context.Background())
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}

		log.Printf("Catalog entries: %d", len(catalog.Entries))
		if catalog.BuiltAt > 0 {
			log.Printf("Last updated: %s", time.Unix(catalog.BuiltAt, 0).Format(time.RFC1123))
		} else {
			log.Println("Warning: catalog has never been built. Run \"hamelp-be rebuild\".")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
