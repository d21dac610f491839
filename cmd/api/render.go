package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func renderCmd(rt *cli) *cobra.Command {
	var (
		jobID int64
		out   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a job's invoice PDF to a file",
		Example: `  invoicing render --job 12
  invoicing render --job 12 --out /tmp/invoice.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobID <= 0 {
				return fmt.Errorf("--job must be a positive job id")
			}

			a, err := rt.app(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := a.Documents.Render(cmd.Context(), jobID)
			if err != nil {
				return fmt.Errorf("render job %d: %w", jobID, err)
			}
			if out == "" {
				out = doc.Filename
			}
			if err := os.WriteFile(out, doc.Content, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s written (%d bytes)\n", out, len(doc.Content))
			return nil
		},
	}
	cmd.Flags().Int64Var(&jobID, "job", 0, "job id to render")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default Invoice-INV-####.pdf)")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}
