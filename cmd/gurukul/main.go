package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rahul/gurukul/pkg/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "gurukul",
	Short:         "Learning assistant toolkit: tech learning plans, English tutoring, and a RAG demo.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Missing .env is fine; explicit env vars still apply.
		_ = godotenv.Load()
		return nil
	},
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to the config file")

	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newEnglishCmd())
	rootCmd.AddCommand(newRAGCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
