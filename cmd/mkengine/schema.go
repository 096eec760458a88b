package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/client"
)

var schemas = map[string]func() *jsonschema.Schema{
	"state":   client.Schema,
	"actions": client.ValidActionsSchema,
}

func newSchemaCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:       "schema [state|actions]",
		Short:     "Print the JSON schema of a client document",
		Long:      `Generates the JSON schema of the client game state (default) or of the valid-actions menu.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"state", "actions"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "state"
			if len(args) == 1 {
				name = args[0]
			}
			data, err := json.MarshalIndent(schemas[name](), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}
			data = append(data, '\n')
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := writeFile(outPath, data); err != nil {
				return err
			}
			a.logger.Info("schema written", zap.String("schema", name), zap.String("path", outPath))
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write the schema to this file instead of stdout")
	return cmd
}

func writeFile(outPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
