package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/config"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/services"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "classify [message]",
		Short:        "Classify one message and print the mood reading as JSON",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runClassify,
	}
	cmd.Flags().Bool("reply", false, "Also generate the supportive reply")
	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	conf, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// stdout carries the JSON result, so logs go to stderr
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	message, err := services.ValidateMessage(strings.Join(args, " "))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	gen, err := libs.NewGenerator(ctx, conf.LLMProvider, conf.APIKey(), conf.LLMModel, conf.LLMBaseURL)
	if err != nil {
		return fmt.Errorf("init %s model client: %w", conf.LLMProvider, err)
	}

	result := services.NewClassifier(gen, conf.LLMTimeout, log).Classify(ctx, message)
	out := map[string]any{"message": message, "classification": result}

	if withReply, _ := cmd.Flags().GetBool("reply"); withReply {
		out["reply"] = services.NewResponder(gen, conf.LLMTimeout, log).Respond(ctx, message, result.Mood, result.Confidence)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
