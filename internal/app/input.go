package app

import (
	"strconv"
	"strings"

	"healthmetrics/internal/domain"
)

// RawInput is the form as typed by the user, before any parsing.
type RawInput struct {
	Weight     string `json:"weight"`
	WeightUnit string `json:"weightUnit"`
	Height     string `json:"height"`
	HeightUnit string `json:"heightUnit"`
	Age        string `json:"age"`
	Sex        string `json:"sex"`
	Activity   string `json:"activity"`
	Protein    string `json:"protein"`
	Carbs      string `json:"carbs"`
	Fats       string `json:"fats"`
}

// Request is a fully typed compute request.
type Request struct {
	Measurement domain.Measurement
	Activity    domain.ActivityLevel
	Goals       domain.MacroGoals
}

// Parse converts raw form input into a Request. Missing macro fields fall
// back to defaults; every other field is required.
func (in RawInput) Parse(defaults domain.MacroGoals) (Request, error) {
	if strings.TrimSpace(in.Weight) == "" || strings.TrimSpace(in.Height) == "" || strings.TrimSpace(in.Age) == "" {
		return Request{}, &domain.InvalidInputError{Reason: "Please fill in all required fields."}
	}
	weight, err := parseNumber("weight", in.Weight)
	if err != nil {
		return Request{}, err
	}
	weightKg, err := domain.WeightToKg(weight, strings.TrimSpace(in.WeightUnit))
	if err != nil {
		return Request{}, err
	}
	height, err := parseNumber("height", in.Height)
	if err != nil {
		return Request{}, err
	}
	heightCm, err := domain.HeightToCm(height, strings.TrimSpace(in.HeightUnit))
	if err != nil {
		return Request{}, err
	}
	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil {
		return Request{}, &domain.InvalidInputError{Field: "age", Reason: "must be a whole number"}
	}
	sex, err := domain.ParseSex(in.Sex)
	if err != nil {
		return Request{}, err
	}
	activity, err := domain.ParseActivityLevel(in.Activity)
	if err != nil {
		return Request{}, err
	}

	goals := defaults
	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"protein", in.Protein, &goals.ProteinPct},
		{"carbs", in.Carbs, &goals.CarbsPct},
		{"fats", in.Fats, &goals.FatsPct},
	} {
		if strings.TrimSpace(f.raw) == "" {
			continue
		}
		v, err := parseNumber(f.name, f.raw)
		if err != nil {
			return Request{}, err
		}
		*f.dst = v
	}

	req := Request{
		Measurement: domain.Measurement{WeightKg: weightKg, HeightCm: heightCm, AgeYears: age, Sex: sex},
		Activity:    activity,
		Goals:       goals,
	}
	if err := req.Measurement.Validate(); err != nil {
		return Request{}, err
	}
	if err := req.Goals.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func parseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &domain.InvalidInputError{Field: field, Reason: "must be a number"}
	}
	return v, nil
}
