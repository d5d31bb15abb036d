package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/intelligrit/attraction-scout/internal/pipeline"
	"github.com/intelligrit/attraction-scout/internal/store"
	"github.com/spf13/cobra"
)

var (
	attractionsVerify bool
	attractionsJSON   bool
)

var attractionsCmd = &cobra.Command{
	Use:   "attractions <city>",
	Short: "Look up the top-ranked attractions for a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		city := args[0]

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		logVerbose("Searching attractions for %s (verify=%v)", city, attractionsVerify)
		svc := newService(cfg, logger, s)
		results, err := svc.Lookup(ctx, city, pipeline.Options{Verify: attractionsVerify})
		if err != nil {
			return err
		}

		if attractionsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		if len(results) == 0 {
			fmt.Printf("No attractions found for %s\n", city)
			return nil
		}

		fmt.Printf("Top %d attractions for %s\n", len(results), city)
		for i, a := range results {
			fmt.Printf("%2d. %-20s  %.1f  %s\n", i+1, a.Name, a.Rating, a.Reviews)
		}
		return nil
	},
}

func init() {
	attractionsCmd.Flags().BoolVar(&attractionsVerify, "verify", false, "Correct each name against the site search")
	attractionsCmd.Flags().BoolVar(&attractionsJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(attractionsCmd)
}
