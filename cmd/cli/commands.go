package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	fromDate string
	toDate   string
	dryRun   bool
	zoneSize int
)

func init() {
	suggestCmd.Flags().StringVar(&fromDate, "from", "", "First date of the week (YYYY-MM-DD)")
	suggestCmd.Flags().StringVar(&toDate, "to", "", "Last date of the week (YYYY-MM-DD)")
	suggestCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute suggestions without persisting them")
	suggestCmd.MarkFlagRequired("from")
	suggestCmd.MarkFlagRequired("to")

	standingsCmd.Flags().IntVar(&zoneSize, "zone-size", 0, "Bucket the board into zones of this size")

	assignZonesCmd.Flags().IntVar(&zoneSize, "zone-size", 0, "Number of players per zone")
	assignZonesCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute zones without persisting them")
	assignZonesCmd.MarkFlagRequired("zone-size")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(assignZonesCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the matches in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Run a suggestion round for a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := fmt.Sprintf("/suggest?from=%s&to=%s", url.QueryEscape(fromDate), url.QueryEscape(toDate))
		if dryRun {
			endpoint += "&dry_run=true"
		}
		return performGetRequest(endpoint)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings [category-id]",
	Short: "Show the standings for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := fmt.Sprintf("/standings?category=%s", url.QueryEscape(args[0]))
		if zoneSize > 0 {
			endpoint += fmt.Sprintf("&zone_size=%d", zoneSize)
		}
		return performGetRequest(endpoint)
	},
}

var assignZonesCmd = &cobra.Command{
	Use:   "assign-zones",
	Short: "Bucket the standings into zones and write them back to the inscriptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := fmt.Sprintf("/assign-zones?zone_size=%d", zoneSize)
		if dryRun {
			endpoint += "&dry_run=true"
		}
		return performGetRequest(endpoint)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
