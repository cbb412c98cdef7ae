package main

import (
	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/version"
)

var (
	cfgFile      string
	outputFormat string
	bearerToken  string
)

var rootCmd = &cobra.Command{
	Use:   "pitchsvc",
	Short: "AI pitch generation service for the startup platform",
	Long: `Pitchsvc generates, stores, and analyzes startup pitches.

Pitches are produced by an AI provider (Gemini or Groq) from four structured
inputs: the problem, the solution, the target market, and the competitive
advantage. Callers are authenticated against the platform's auth service and
every pitch belongs to the caller's startup.

The server exposes:
  - /api/pitches  - Pitch CRUD, favorites, ratings, and statistics
  - /api/ai       - One-off generation, improvement, and analysis
  - /swagger      - Interactive API documentation`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.pitchsvc/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&bearerToken, "token", "", "platform bearer token for authenticated API calls",
	)

	// Set output format and token before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
		api.SetToken(bearerToken)
	}

	rootCmd.AddCommand(versionCmd)
}
