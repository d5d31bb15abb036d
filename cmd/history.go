package cmd

import (
	"fmt"
	"sort"

	"github.com/intelligrit/attraction-scout/internal/cache"
	"github.com/intelligrit/attraction-scout/internal/store"
	"github.com/spf13/cobra"
)

var (
	historyCity  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded lookups",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("Lookup History\n")
		fmt.Printf("==============\n")
		fmt.Printf("Total lookups: %d\n", s.LookupCount())

		counts := s.CityCounts()
		if len(counts) > 0 {
			fmt.Printf("\nPer-City Breakdown\n")
			fmt.Printf("------------------\n")

			var cities []string
			for c := range counts {
				cities = append(cities, c)
			}
			sort.Strings(cities)

			for _, c := range cities {
				fmt.Printf("  %-12s  lookups: %3d\n", c, counts[c])
			}
		}

		var key string
		if historyCity != "" {
			key = cache.Key(historyCity)
		}
		runs, err := s.ReadLookups(key, historyLimit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if len(runs) == 0 {
			return nil
		}

		fmt.Printf("\nRecent Lookups\n")
		fmt.Printf("--------------\n")
		for _, run := range runs {
			top := "-"
			if len(run.Attractions) > 0 {
				top = run.Attractions[0].Name
			}
			fmt.Printf("  %s  %-12s  %2d results  top: %s\n",
				run.FetchedAt.Local().Format("2006-01-02 15:04"), run.City, len(run.Attractions), top)
			logVerbose("    id %s", run.ID)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyCity, "city", "", "Only show lookups for this city")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of recent lookups to show")
	rootCmd.AddCommand(historyCmd)
}
