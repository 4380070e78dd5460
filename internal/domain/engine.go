package domain

import (
	"math"
	"strings"
)

// Sex selects the BMR equation.
type Sex string

// Supported sexes.
const (
	Male   Sex = "male"
	Female Sex = "female"
)

// ParseSex accepts "male"/"female", their single-letter forms and the
// Indonesian "pria"/"wanita".
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "pria":
		return Male, nil
	case "female", "f", "wanita":
		return Female, nil
	case "":
		return "", invalid("sex", "sex is required")
	}
	return "", invalid("sex", "sex must be \"male\" or \"female\"")
}

// Measurement is one set of anthropometric inputs. Height is always in
// centimetres.
type Measurement struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
	AgeYears int     `json:"ageYears"`
	Sex      Sex     `json:"sex"`
}

// MacroGoals is the share of daily calories, in percent, assigned to each
// macronutrient.
type MacroGoals struct {
	ProteinPct float64 `json:"proteinPct" yaml:"protein_pct"`
	CarbsPct   float64 `json:"carbsPct" yaml:"carbs_pct"`
	FatsPct    float64 `json:"fatsPct" yaml:"fats_pct"`
}

// DefaultMacroGoals is the 15/55/30 split the forms start with.
var DefaultMacroGoals = MacroGoals{ProteinPct: 15, CarbsPct: 55, FatsPct: 30}

// Macros holds daily gram targets.
type Macros struct {
	ProteinG int `json:"proteinG"`
	FatsG    int `json:"fatsG"`
	CarbsG   int `json:"carbsG"`
}

// HealthReport is the immutable result of one computation.
type HealthReport struct {
	BMI           float64     `json:"bmi"`
	BMICategory   BMICategory `json:"bmiCategory"`
	BMR           float64     `json:"bmr"`
	DailyCalories int         `json:"dailyCalories"`
	WaterIntakeMl int         `json:"waterIntakeMl"`
	Macros        Macros      `json:"macros"`
}

const (
	waterMlPerKg    = 33
	kcalPerGProtein = 4
	kcalPerGCarbs   = 4
	kcalPerGFat     = 9
	macroTolerance  = 0.5
)

// ComputeBMI returns weightKg / (heightCm/100)^2.
func ComputeBMI(weightKg, heightCm float64) (float64, error) {
	if err := positive("weightKg", weightKg); err != nil {
		return 0, err
	}
	if err := positive("heightCm", heightCm); err != nil {
		return 0, err
	}
	h := heightCm / 100
	return weightKg / (h * h), nil
}

// ComputeBMR estimates basal metabolic rate with the Harris-Benedict
// equations, in kcal/day.
func ComputeBMR(weightKg, heightCm float64, ageYears int, sex Sex) (float64, error) {
	if err := positive("weightKg", weightKg); err != nil {
		return 0, err
	}
	if err := positive("heightCm", heightCm); err != nil {
		return 0, err
	}
	if ageYears <= 0 {
		return 0, invalid("ageYears", "must be > 0")
	}
	age := float64(ageYears)
	switch sex {
	case Male:
		return 66.5 + 13.7*weightKg + 5*heightCm - 6.8*age, nil
	case Female:
		return 655 + 9.6*weightKg + 1.8*heightCm - 4.7*age, nil
	}
	return 0, invalid("sex", "sex must be \"male\" or \"female\"")
}

// ComputeDailyCalories scales bmr by the activity multiplier and rounds to
// the nearest kcal.
func ComputeDailyCalories(bmr float64, level ActivityLevel) (int, error) {
	if !level.Valid() {
		return 0, invalid("activity", "unrecognized activity multiplier %v", float64(level))
	}
	if err := positive("bmr", bmr); err != nil {
		return 0, err
	}
	return roundInt("dailyCalories", bmr*float64(level))
}

// ComputeWaterIntakeMl returns the recommended daily water intake at
// 33 mL per kg of body weight.
func ComputeWaterIntakeMl(weightKg float64) (int, error) {
	if err := positive("weightKg", weightKg); err != nil {
		return 0, err
	}
	return roundInt("waterIntakeMl", weightKg*waterMlPerKg)
}

// ComputeMacros converts a calorie target and percentage split into grams.
// Each field is rounded independently.
func ComputeMacros(dailyCalories int, goals MacroGoals) (Macros, error) {
	if dailyCalories < 0 {
		return Macros{}, invalid("dailyCalories", "must be >= 0")
	}
	if err := goals.Validate(); err != nil {
		return Macros{}, err
	}
	cal := float64(dailyCalories)
	protein, err := roundInt("proteinG", cal*goals.ProteinPct/100/kcalPerGProtein)
	if err != nil {
		return Macros{}, err
	}
	fats, err := roundInt("fatsG", cal*goals.FatsPct/100/kcalPerGFat)
	if err != nil {
		return Macros{}, err
	}
	carbs, err := roundInt("carbsG", cal*goals.CarbsPct/100/kcalPerGCarbs)
	if err != nil {
		return Macros{}, err
	}
	return Macros{ProteinG: protein, FatsG: fats, CarbsG: carbs}, nil
}

// Validate checks each percentage is within [0,100] and that the three sum
// to 100 within half a percent.
func (g MacroGoals) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"proteinPct", g.ProteinPct},
		{"carbsPct", g.CarbsPct},
		{"fatsPct", g.FatsPct},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 100 {
			return invalid(f.name, "must be between 0 and 100")
		}
	}
	sum := g.ProteinPct + g.CarbsPct + g.FatsPct
	if math.Abs(sum-100) > macroTolerance {
		return invalid("macros", "percentages must sum to 100, got %g", sum)
	}
	return nil
}

// Validate checks every field of m is present and positive.
func (m Measurement) Validate() error {
	if err := positive("weightKg", m.WeightKg); err != nil {
		return err
	}
	if err := positive("heightCm", m.HeightCm); err != nil {
		return err
	}
	if m.AgeYears <= 0 {
		return invalid("ageYears", "must be > 0")
	}
	if m.Sex != Male && m.Sex != Female {
		return invalid("sex", "sex must be \"male\" or \"female\"")
	}
	return nil
}

// BuildReport runs the full pipeline: BMI, category, BMR, calories, water
// and macros, in that order. It stops at the first validation error.
func BuildReport(m Measurement, level ActivityLevel, goals MacroGoals) (HealthReport, error) {
	if err := m.Validate(); err != nil {
		return HealthReport{}, err
	}
	bmi, err := ComputeBMI(m.WeightKg, m.HeightCm)
	if err != nil {
		return HealthReport{}, err
	}
	category := ClassifyBMI(bmi)
	bmr, err := ComputeBMR(m.WeightKg, m.HeightCm, m.AgeYears, m.Sex)
	if err != nil {
		return HealthReport{}, err
	}
	calories, err := ComputeDailyCalories(bmr, level)
	if err != nil {
		return HealthReport{}, err
	}
	water, err := ComputeWaterIntakeMl(m.WeightKg)
	if err != nil {
		return HealthReport{}, err
	}
	macros, err := ComputeMacros(calories, goals)
	if err != nil {
		return HealthReport{}, err
	}
	return HealthReport{
		BMI:           bmi,
		BMICategory:   category,
		BMR:           bmr,
		DailyCalories: calories,
		WaterIntakeMl: water,
		Macros:        macros,
	}, nil
}

// roundInt rounds v to the nearest integer, rejecting results that do not
// fit in 32 bits.
func roundInt(field string, v float64) (int, error) {
	r := math.Round(v)
	if math.IsNaN(r) || r > math.MaxInt32 || r < math.MinInt32 {
		return 0, invalid(field, "result out of range, check the inputs")
	}
	return int(r), nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	if v <= 0 {
		return invalid(field, "must be > 0")
	}
	return nil
}
