package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"simplifier/internal/config"
)

var (
	cfgPath        string
	embeddingsPath string
	wordsPath      string
	logLevel       string
	relatedK       int

	cfg    *config.AppConfig
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:           "simplifier",
		Short:         "Simplify text by replacing uncommon words with close simple words",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgPath == "" {
				cfg, _, err = config.LoadDefault()
			} else {
				cfg, err = config.Load(cfgPath)
			}
			if err != nil {
				return err
			}
			config.ApplyEnv(cfg)
			if embeddingsPath != "" {
				cfg.Sources.Embeddings = embeddingsPath
			}
			if wordsPath != "" {
				cfg.Sources.Words = wordsPath
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			logger = newLogger(cfg.Log)
			slog.SetDefault(logger)
			return nil
		},
	}

	simplifyCmd = &cobra.Command{
		Use:   "simplify [input] [output]",
		Short: "Simplify a text file line by line",
		Args:  cobra.ExactArgs(2),
		RunE:  runSimplify,
	}

	gameCmd = &cobra.Command{
		Use:   "game",
		Short: "Play the word-guessing game",
		Args:  cobra.NoArgs,
		RunE:  runGame,
	}

	relatedCmd = &cobra.Command{
		Use:   "related [word]",
		Short: "List the simple words closest to a word",
		Args:  cobra.ExactArgs(1),
		RunE:  runRelated,
	}

	similarityCmd = &cobra.Command{
		Use:   "similarity [word] [word]",
		Short: "Print the cosine similarity of two words",
		Args:  cobra.ExactArgs(2),
		RunE:  runSimilarity,
	}

	explainCmd = &cobra.Command{
		Use:   "explain [word...]",
		Short: "Show how each word would be simplified",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExplain,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (default ./config.yaml or ~/.config/simplifier/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&embeddingsPath, "embeddings", "", "Path to the word embeddings file")
	rootCmd.PersistentFlags().StringVar(&wordsPath, "words", "", "Path to the simple words list")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	relatedCmd.Flags().IntVarP(&relatedK, "top", "k", 5, "Number of related words")

	rootCmd.AddCommand(simplifyCmd, gameCmd, relatedCmd, similarityCmd, explainCmd)
}
