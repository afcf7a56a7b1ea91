package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/corpus"
)

var errNoAPIKey = errors.New("openai.api_key is required (set OPENAI_API_KEY)")

func newCorpusCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect or extend the paragraph corpus",
	}
	cmd.AddCommand(newCorpusBuildCommand(a), newCorpusStatsCommand(a))
	return cmd
}

func newCorpusBuildCommand(a *app) *cobra.Command {
	var (
		perTopic int
		out      string
		merge    bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Ask an OpenAI chat model for fresh paragraphs and save them as a corpus file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cfg.OpenAI.APIKey == "" {
				return errNoAPIKey
			}
			if perTopic <= 0 {
				return fmt.Errorf("--per-topic must be positive")
			}

			logger, err := cliLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if cfg.OpenAI.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.OpenAI.Timeout*4)
				defer cancel()
			}

			builder := corpus.NewBuilder(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature, logger.Named("corpus"))
			built, err := builder.Build(ctx, perTopic)
			if err != nil {
				return err
			}

			if merge {
				base := corpus.Default()
				base.Merge(built)
				built = base
			}
			if err := built.Save(out); err != nil {
				return err
			}

			logger.Info("Corpus saved", zap.String("path", out), zap.Bool("merged", merge))
			printStats(cmd, built)
			return nil
		},
	}

	cmd.Flags().IntVar(&perTopic, "per-topic", 10, "paragraphs to request per topic")
	cmd.Flags().StringVarP(&out, "out", "o", "corpus.json", "corpus file to write")
	cmd.Flags().BoolVar(&merge, "merge", false, "include the built-in corpus in the saved file")
	return cmd
}

func newCorpusStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [path]",
		Short: "Print paragraph counts per topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := a.loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Generator.CorpusPath
			}

			c, err := corpus.Load(path)
			if err != nil {
				return err
			}
			printStats(cmd, c)
			return nil
		},
	}
}

func printStats(cmd *cobra.Command, c *corpus.Corpus) {
	stats := c.Stats()
	out := cmd.OutOrStdout()
	for _, topic := range corpus.Topics {
		fmt.Fprintf(out, "%-8s %d\n", topic, stats[topic])
	}
}
