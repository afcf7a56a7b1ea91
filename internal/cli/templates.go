package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/garyjia/docsynth/internal/models"
)

// templateEntry is one line of the templates listing
type templateEntry struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Subtype string `yaml:"subtype,omitempty"`
}

func newTemplatesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates [class]",
		Short: "List the discovered templates as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := models.ClassAll
			if len(args) == 1 {
				selector = args[0]
			}
			classes, err := models.ParseClasses(selector)
			if err != nil {
				return err
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			logger, err := cliLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			c, err := startEphemeral(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			listing := make(map[string][]templateEntry, len(classes))
			for _, class := range classes {
				handles, err := c.ListTemplates(class)
				if err != nil {
					return err
				}
				listing[string(class)] = toEntries(handles)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(listing); err != nil {
				return fmt.Errorf("failed to encode templates: %w", err)
			}
			return enc.Close()
		},
	}
}

func toEntries(handles []models.TemplateHandle) []templateEntry {
	out := make([]templateEntry, len(handles))
	for i, h := range handles {
		out[i] = templateEntry{Name: h.Name, Path: h.Path, Subtype: string(h.Subtype)}
	}
	return out
}
