package main

import (
	"encoding/json"
	"fmt"
	"io"

	"healthmetrics/internal/app"
	"healthmetrics/internal/domain"

	"github.com/spf13/cobra"
)

func newReportCmd(c *cli) *cobra.Command {
	var in app.RawInput
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute a health report once and print it",
		Example: `  healthmetrics report --weight 70 --height 170 --age 30 --sex male --activity moderate
  healthmetrics report --weight 154 --weight-unit lb --height 1.7 --height-unit m --age 30 --sex f --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Activity == "" {
				in.Activity = c.cfg.Defaults.Activity
			}
			req, err := in.Parse(c.cfg.Defaults.Macros)
			if err != nil {
				return err
			}
			report, err := domain.BuildReport(req.Measurement, req.Activity, req.Goals)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Weight, "weight", "", "body weight")
	f.StringVar(&in.WeightUnit, "weight-unit", "kg", "weight unit: kg or lb")
	f.StringVar(&in.Height, "height", "", "body height")
	f.StringVar(&in.HeightUnit, "height-unit", "cm", "height unit: cm, m or in")
	f.StringVar(&in.Age, "age", "", "age in whole years")
	f.StringVar(&in.Sex, "sex", "", "male or female")
	f.StringVar(&in.Activity, "activity", "", "activity level name or multiplier (default from config)")
	f.StringVar(&in.Protein, "protein", "", "protein share of calories, percent")
	f.StringVar(&in.Carbs, "carbs", "", "carbohydrate share of calories, percent")
	f.StringVar(&in.Fats, "fats", "", "fat share of calories, percent")
	f.BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printReport(w io.Writer, r domain.HealthReport) {
	fmt.Fprintf(w, "BMI:            %.1f (%s)\n", r.BMI, r.BMICategory)
	fmt.Fprintf(w, "BMR:            %.1f kcal/day\n", r.BMR)
	fmt.Fprintf(w, "Daily calories: %d kcal\n", r.DailyCalories)
	fmt.Fprintf(w, "Water intake:   %d mL\n", r.WaterIntakeMl)
	fmt.Fprintf(w, "Protein:        %d g\n", r.Macros.ProteinG)
	fmt.Fprintf(w, "Fats:           %d g\n", r.Macros.FatsG)
	fmt.Fprintf(w, "Carbs:          %d g\n", r.Macros.CarbsG)
	fmt.Fprintf(w, "\n%s\n", r.BMICategory.Recommendation())
}
