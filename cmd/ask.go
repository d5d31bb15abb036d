package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/intelligrit/attraction-scout/internal/chat"
	"github.com/intelligrit/attraction-scout/internal/pipeline"
	"github.com/intelligrit/attraction-scout/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	askCity     string
	askNoStream bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the chat model a travel question, optionally grounded on a city's attractions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		client, err := chat.NewClient(cfg.Chat.BaseURL, cfg.Chat.Model, cfg.Chat.APIKey())
		if err != nil {
			return fmt.Errorf("%w (set %s)", err, cfg.Chat.APIKeyEnv)
		}
		client.Logger = logger.Named("chat")

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		prompt := question
		if askCity != "" {
			prompt = augment(ctx, question)
		}
		msgs := chat.Conversation(cfg.Chat.SystemPrompt, prompt)

		if askNoStream {
			answer, err := client.Complete(ctx, msgs)
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		}

		_, err = client.Stream(ctx, msgs, func(delta string) { fmt.Print(delta) })
		fmt.Println()
		return err
	},
}

// augment prefixes question with askCity's attractions. A failed lookup
// falls back to the plain question.
func augment(ctx context.Context, question string) string {
	var history pipeline.Recorder
	s, err := store.New(dataDir)
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
	} else {
		defer s.Close()
		history = s
	}

	logVerbose("Looking up attractions for %s", askCity)
	results, err := newService(cfg, logger, history).Lookup(ctx, askCity, pipeline.Options{})
	if err != nil {
		logger.Warn("attraction lookup failed, asking without results", zap.Error(err))
		return question
	}
	logVerbose("Augmenting prompt with %d attractions", len(results))
	return chat.AugmentPrompt(question, results)
}

func init() {
	askCmd.Flags().StringVar(&askCity, "city", "", "Ground the answer on this city's attractions")
	askCmd.Flags().BoolVar(&askNoStream, "no-stream", false, "Wait for the full answer instead of streaming it")
	rootCmd.AddCommand(askCmd)
}
