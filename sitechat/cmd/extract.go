package main

import (
	"encoding/json"
	"fmt"

	"sitechat/sitechat/config"
	"sitechat/sitechat/utils/color"

	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var parallel int
	var failFast bool

	cmd := &cobra.Command{
		Use:   "extract <url>...",
		Short: "Extract one or more pages and print them as JSON",
		Long: `Extract one or more pages and print the results as a JSON array.

Examples:
  sitechat extract example.com
  sitechat extract --parallel 8 a.example b.example c.example`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			s, err := newScraper(cfg)
			if err != nil {
				return err
			}

			results := s.ExtractMany(cmd.Context(), args, parallel)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Fprintln(cmd.ErrOrStderr(), color.ColorWarning("failed: ")+color.ColorURL(res.URL)+" "+res.Error)
				}
			}
			if failed > 0 && failFast {
				return fmt.Errorf("%d of %d extractions failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "maximum concurrent extractions")
	cmd.Flags().BoolVar(&failFast, "strict", false, "exit non-zero when any extraction fails")
	return cmd
}
