package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
)

func predictCmd() *cobra.Command {
	var (
		v      dal.Vehicle
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   PredictCmdName,
		Short: PredictCmdShort,
		Long:  PredictCmdLong,
		Example: `  carprice predict --make toyota --fuel-type essence --num-doors four \
    --body-style sedan --horsepower 120 --city-mpg 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.Validate(); err != nil {
				return err
			}

			cfg, svc, err := bootstrap()
			if err != nil {
				return err
			}

			p, err := svc.Predict(v)
			if err != nil {
				return fmt.Errorf("prediction failed: %w", err)
			}

			f := cfg.Formatter()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(f.Response(v, p))
			}

			t := f.Texts()
			fmt.Fprintln(out, t.PriceLabel, f.Price(p.Price))
			fmt.Fprintln(out, t.CategoryLabel, f.Category(p.Category))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&v.Make, "make", "", "vehicle make (e.g. toyota)")
	flags.StringVar(&v.FuelType, "fuel-type", "", "fuel type (diesel, essence)")
	flags.StringVar(&v.NumDoors, "num-doors", "", "number of doors (two, four)")
	flags.StringVar(&v.BodyStyle, "body-style", "", "body style (sedan, hatchback, wagon)")
	flags.IntVar(&v.Horsepower, "horsepower", dal.HorsepowerDefault,
		fmt.Sprintf("horsepower, %d to %d", dal.HorsepowerMin, dal.HorsepowerMax))
	flags.IntVar(&v.CityMPG, "city-mpg", dal.CityMPGDefault,
		fmt.Sprintf("city consumption in mpg, %d to %d", dal.CityMPGMin, dal.CityMPGMax))
	flags.BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
