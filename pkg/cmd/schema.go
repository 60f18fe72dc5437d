package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/encoder"
)

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   SchemaCmdName,
		Short: SchemaCmdShort,
		Long:  SchemaCmdLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, svc, err := bootstrap()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			schema := svc.Schema()
			for i, col := range schema {
				fmt.Fprintf(out, "%3d  %s\n", i, col)
			}

			var drift *encoder.DriftError
			if err := encoder.Validate(svc.Catalog(), schema); errors.As(err, &drift) {
				fmt.Fprintln(out)
				for _, p := range drift.Problems() {
					fmt.Fprintf(out, "drift  %s\n", p)
				}
			}
			return nil
		},
	}
}
