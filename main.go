package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "mindscope",
	Short: "MindScope AI emotional wellbeing backend",
	Long:  "Mood-aware chat API: classifies each message, replies with empathy and keeps a mood history for analytics.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory containing the .env file")
	rootCmd.AddCommand(newServeCmd(), newClassifyCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
