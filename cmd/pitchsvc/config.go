package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/config"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write a default configuration file",
	Long: `Write a default configuration file with commented defaults.

API keys are referenced via environment variables (GEMINI_API_KEY,
GROQ_API_KEY) so the file itself contains no secrets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) > 0 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}
		cmd.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initConfigCmd)
}
