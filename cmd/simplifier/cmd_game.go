package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"simplifier/internal/game"
	"simplifier/internal/tui"
)

func runGame(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	g, err := game.New(s.engine, s.result.Words,
		game.WithCorrectThreshold(cfg.Game.CorrectThreshold),
		game.WithHints(cfg.Game.Hints),
		game.WithSuggestThreshold(cfg.Game.SuggestThreshold),
	)
	if err != nil {
		return err
	}
	p := tea.NewProgram(tui.New(g), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "The word was %q. Final score: %d\n", g.Target(), g.Score())
	return nil
}
