package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	replacedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func runRelated(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	res := s.engine.Related(args[0], relatedK)
	if len(res) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No embedding found for word: %s\n", args[0])
		return nil
	}
	for _, r := range res {
		fmt.Fprintf(cmd.OutOrStdout(), " - %-20s %.4f\n", r.Word, r.Score)
	}
	return nil
}

func runSimilarity(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	a, b := args[0], args[1]
	if !s.engine.Known(a) || !s.engine.Known(b) {
		fmt.Fprintln(cmd.OutOrStdout(), "One or both words are not found in embeddings.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", s.engine.SimilarityBetween(a, b))
	return nil
}

func runExplain(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-16s %-16s %-16s %8s  %s", "input", "cleaned", "best match", "score", "output")))
	b.WriteString("\n")
	for _, w := range args {
		m := s.engine.Match(w)
		best, score := "-", "-"
		if m.Known {
			best = m.Best.Word
			score = fmt.Sprintf("%.4f", m.Best.Score)
		}
		output := m.Output
		if m.Replaced {
			output = replacedStyle.Render(output)
		}
		fmt.Fprintf(&b, "%-16s %-16s %-16s %8s  %s\n", m.Input, m.Cleaned, best, score, output)
	}
	fmt.Fprint(cmd.OutOrStdout(), b.String())
	return nil
}
