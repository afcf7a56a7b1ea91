package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/config"
	"github.com/garyjia/docsynth/internal/container"
	"github.com/garyjia/docsynth/internal/export"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/pkg/utils"
)

// generateOptions are the batch surface flags of the generate command
type generateOptions struct {
	class       string
	count       int
	output      string
	seed        uint64
	noLabels    bool
	interactive bool
}

func newGenerateCommand(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a labeled dataset of synthetic document images",
		Long: `Generate renders the requested number of documents per class into
<output>/<class>/synthetic_<class>_<NNNN>.<ext> and writes labels.xlsx and
generation_metadata.json next to them.

Without --class the per-class counts of the configuration are used. With
--class and no --count every selected class gets its configured count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			if opts.interactive {
				if err := askGenerateOptions(opts, cfg); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("seed") || opts.interactive {
				cfg.Generator.Seed = opts.seed
			}
			return runGenerate(cmd, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.class, "class", "", "document class to generate: tax-form, pay-statement, miscellaneous or all")
	flags.IntVar(&opts.count, "count", -1, "documents per selected class")
	flags.StringVarP(&opts.output, "output", "o", "", "output root (default from config)")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed; 0 picks one from the clock")
	flags.BoolVar(&opts.noLabels, "no-labels", false, "skip writing labels.xlsx")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for classes, count and output")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, opts *generateOptions) error {
	counts, err := resolveCounts(cfg, opts.class, opts.count)
	if err != nil {
		return err
	}
	root := cfg.Output.Dir
	if opts.output != "" {
		root = opts.output
	}
	if opts.noLabels {
		cfg.Output.Labels = false
	}

	logger, err := cliLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := startContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	logger.Info("Starting generation",
		zap.Any("counts", counts),
		zap.String("output", root),
		zap.Uint64("seed", cfg.Generator.Seed))

	result, runErr := c.Generate(ctx, container.GenerateRequest{
		Counts: counts,
		Root:   root,
		Seed:   cfg.Generator.Seed,
	})
	if result != nil && result.Metadata != nil {
		export.WriteSummary(cmd.OutOrStdout(), result.Metadata)
	}
	return runErr
}

// resolveCounts turns the class and count flags into per-class counts.
// An empty class keeps the configured counts; a negative count means the
// configured count of each selected class.
func resolveCounts(cfg *config.Config, class string, count int) (map[models.DocumentClass]int, error) {
	configured, err := cfg.ClassCounts()
	if err != nil {
		return nil, err
	}

	if class == "" && count < 0 {
		return configured, nil
	}

	classes, err := models.ParseClasses(class)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.DocumentClass]int, len(classes))
	for _, c := range classes {
		n := count
		if n < 0 {
			n = configured[c]
		}
		if err := utils.ValidateCount(n, 0); err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		counts[c] = n
	}
	return counts, nil
}
