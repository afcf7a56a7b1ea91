package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/garyjia/docsynth/internal/models"
)

func newPreviewCommand(a *app) *cobra.Command {
	var (
		seed       uint64
		out        string
		showFields bool
	)

	cmd := &cobra.Command{
		Use:   "preview <class>",
		Short: "Fill one template with generated fields and print the HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := models.ParseClass(args[0])
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

			preview, err := c.Preview(class, seed)
			if err != nil {
				return err
			}

			if showFields {
				node, err := fieldsNode(preview.Fields)
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("failed to encode fields: %w", err)
				}
				return enc.Close()
			}

			if out == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), preview.HTML)
				return err
			}
			if err := os.WriteFile(out, []byte(preview.HTML), 0644); err != nil {
				return fmt.Errorf("failed to write preview: %w", err)
			}
			logger.Info("Preview written",
				zap.String("template", preview.Template.Name),
				zap.String("path", out))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed; 0 picks one from the clock")
	cmd.Flags().StringVar(&out, "out", "", "write the HTML to this file instead of stdout")
	cmd.Flags().BoolVar(&showFields, "fields", false, "print the generated fields as YAML instead of HTML")
	return cmd
}

// fieldsNode keeps the generation order of the fields in the YAML output
func fieldsNode(m *models.FieldMapping) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range m.Keys() {
		value, _ := m.Get(key)

		var v yaml.Node
		if err := v.Encode(value); err != nil {
			return nil, fmt.Errorf("failed to encode field %s: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&v)
	}
	return node, nil
}
