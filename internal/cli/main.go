package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	root := &cobra.Command{
		Use:           "econclip",
		Short:         "Cut topic-tagged clips from economics videos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	root.PersistentFlags().String("config", "", "Path to a YAML config file")
	root.PersistentFlags().String("cache", ".cache", "Cache directory for media and transcripts")
	root.PersistentFlags().String("model", "", "Override the GPT model")

	root.AddCommand(newClipCmd(log), newTopicsCmd(log))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
