package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

// rebuildCmd forces a synchronous catalog rebuild.
var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the FAQ catalog",
	Long:  `Reads all published FAQs and replaces the stored catalog snapshot`,
	Run: func(cmd *cobra.Command, args []string) {
		catalogService, err := loadCatalogService()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}

		log.Println("Rebuilding FAQ catalog...")
		catalog, err := catalogService.Rebuild(context.Background())
		if err != nil {
			log.Fatalf("Rebuild failed: %v", err)
		}
		log.Printf("FAQ catalog rebuilt. %d entries.", len(catalog.Entries))
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
