package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	client "storefront.GO/model/client"
	entity "storefront.GO/model/entity"
	storefrontService "storefront.GO/service/storefront"
)

var (
	previewSearch string
	previewSort   string
	previewRecent string
	previewLimit  int
)

var previewCmd = &cobra.Command{
	Use:   "catalog:preview",
	Short: "Fetch the catalog and print the derived storefront view",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()

		start := time.Now()
		c := client.NewCatalogClient(config.AppConfig.CatalogURL)
		products, err := c.Fetch(context.Background())
		if err != nil {
			fmt.Printf("Catalog fetch failed: %v\n", err)
			return
		}

		out := storefrontService.Derive(products, 0, previewSearch,
			entity.ParseRecentFilter(previewRecent), entity.ParseSortMode(previewSort))

		limit := previewLimit
		if limit <= 0 || limit > len(out) {
			limit = len(out)
		}
		for _, p := range out[:limit] {
			flag := " "
			if p.JustIn {
				flag = "*"
			}
			fmt.Printf("%s %-36s %10s  (%d)\n", flag, p.Name, p.Price, p.PriceValue())
		}
		fmt.Printf("\n%d of %d products (catalog %d, %s)\n",
			limit, len(out), len(products), time.Since(start).Round(time.Millisecond))
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewSearch, "search", "", "Case-insensitive name filter")
	previewCmd.Flags().StringVar(&previewSort, "sort", "name_asc", "Sort mode: name_asc|name_desc|price_asc|price_desc")
	previewCmd.Flags().StringVar(&previewRecent, "recent", "all", "Recent filter: all|justIn|notJustIn")
	previewCmd.Flags().IntVar(&previewLimit, "limit", 0, "Max rows to print (0 = all)")
	rootCmd.AddCommand(previewCmd)
}
