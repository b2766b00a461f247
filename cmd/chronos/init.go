package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/chronos/internal/config"
)

//go:embed templates/chronos.yaml
var configTemplate embed.FS

// configFileName is the default settings file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a chronos settings file",
		Long: `Init writes a commented settings file with the default model and search
settings.

Examples:
  # Create .chronos.yaml in the current directory
  chronos init

  # Create the per-user settings file in the XDG config directory
  chronos init --global

  # Create a settings file at a specific path, overwriting it
  chronos init -o settings.yaml -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the settings file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite an existing settings file")
	cmd.Flags().Bool("global", false,
		"Write to the XDG config directory instead of --output")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	global, err := cmd.Flags().GetBool("global")
	if err != nil {
		return err
	}
	if global {
		outputPath = filepath.Join(config.XDGConfigDir(), config.XDGConfigFile)
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("settings file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/chronos.yaml")
	if err != nil {
		return fmt.Errorf("failed to read settings template: %w", err)
	}

	if err := ensureDir(outputPath); err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created settings file: %s\n", outputPath)
	fmt.Fprintln(out, "\nCredentials are not stored in this file. Set them in the environment or .env:")
	fmt.Fprintf(out, "  %s\n  %s\n  %s\n", config.EnvGeminiAPIKey, config.EnvSearchAPIKey, config.EnvSearchEngineID)

	return nil
}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
