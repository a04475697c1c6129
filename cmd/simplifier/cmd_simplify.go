package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"simplifier/internal/service"
)

func runSimplify(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	s, err := openSession(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	svc := service.NewTextService(s.engine, logger)
	st, err := svc.ProcessFile(cmd.Context(), in, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Text simplification completed. Output saved to: %s (%d lines, %d of %d words replaced)\n",
		out, st.Lines, st.Replaced, st.Tokens)
	return nil
}
