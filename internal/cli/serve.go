package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/interfaces/http"
	"github.com/garyjia/docsynth/pkg/utils"
)

func newServeCommand(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the batch API and its background worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			logger, err := utils.NewLogger(utils.LoggerConfig{
				Level:      cfg.Logger.Level,
				OutputPath: cfg.Logger.OutputPath,
				Format:     cfg.Logger.Format,
			})
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("Starting docsynth server",
				zap.String("version", Version),
				zap.String("address", cfg.ServerAddr()),
				zap.String("output", cfg.Output.Dir))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := startContainer(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			handlers := http.NewHandlers(http.Deps{
				Queue:      c.Worker(),
				Jobs:       c.Jobs(),
				Batches:    c.Ledger().Batches(),
				Templates:  c,
				Health:     c,
				OutputRoot: cfg.Output.Dir,
				MaxCount:   cfg.Server.MaxCount,
				Version:    Version,
			}, logger.Named("http"))

			server := http.NewServer(cfg.Server, handlers, logger.Named("http"))
			return server.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config)")
	return cmd
}
