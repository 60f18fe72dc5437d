package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/form"
)

func formCmd() *cobra.Command {
	return &cobra.Command{
		Use:   FormCmdName,
		Short: FormCmdShort,
		Long:  FormCmdLong,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, svc, err := bootstrap()
			if err != nil {
				return err
			}
			return form.Run(cmd.Context(), svc, svc.Catalog(), cfg.Formatter())
		},
	}
}
