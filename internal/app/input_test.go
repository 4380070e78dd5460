package app_test

import (
	"errors"
	"testing"

	"healthmetrics/internal/app"
	"healthmetrics/internal/domain"
)

func TestRawInputParse(t *testing.T) {
	in := app.RawInput{Weight: "154.3236", WeightUnit: "lb", Height: "1.7", HeightUnit: "m", Age: "30", Sex: "pria", Activity: "moderate"}
	req, err := in.Parse(domain.DefaultMacroGoals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(req.Measurement.WeightKg, 70, 0.001) || !almostEqual(req.Measurement.HeightCm, 170, 0.001) {
		t.Errorf("unexpected measurement: %+v", req.Measurement)
	}
	if req.Measurement.Sex != domain.Male || req.Activity != domain.Moderate {
		t.Errorf("unexpected request: %+v", req)
	}
	if req.Goals != domain.DefaultMacroGoals {
		t.Errorf("expected default goals, got %+v", req.Goals)
	}
}

func TestRawInputParse_Errors(t *testing.T) {
	base := app.RawInput{Weight: "70", Height: "170", Age: "30", Sex: "male", Activity: "1.2"}
	tests := []struct {
		name  string
		edit  func(in *app.RawInput)
		field string
	}{
		{"missing weight", func(in *app.RawInput) { in.Weight = "" }, ""},
		{"non-numeric height", func(in *app.RawInput) { in.Height = "tall" }, "height"},
		{"fractional age", func(in *app.RawInput) { in.Age = "30.5" }, "age"},
		{"negative weight", func(in *app.RawInput) { in.Weight = "-70" }, "weightKg"},
		{"bad unit", func(in *app.RawInput) { in.WeightUnit = "st" }, "weightUnit"},
		{"bad activity", func(in *app.RawInput) { in.Activity = "2" }, "activity"},
		{"macros sum 110", func(in *app.RawInput) { in.Protein = "25" }, "macros"},
		{"macros not a number", func(in *app.RawInput) { in.Fats = "lots" }, "fats"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.edit(&in)
			_, err := in.Parse(domain.DefaultMacroGoals)
			var ie *domain.InvalidInputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
			if ie.Field != tc.field {
				t.Errorf("field = %q; want %q", ie.Field, tc.field)
			}
		})
	}
}
