package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var verifyCity string

var verifyCmd = &cobra.Command{
	Use:   "verify <name>...",
	Short: "Correct attraction names against the site search",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		v := newVerifier(cfg, logger)
		for i, name := range args {
			logVerbose("[%d/%d] Verifying %s", i+1, len(args), name)
			res := v.Verify(ctx, name, verifyCity)
			if res.CorrectName == name {
				fmt.Printf("%s (unchanged)\n", name)
				continue
			}
			fmt.Printf("%s -> %s\n", name, res.CorrectName)
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verifyCity, "city", "", "City the attractions belong to")
	_ = verifyCmd.MarkFlagRequired("city")
	rootCmd.AddCommand(verifyCmd)
}
