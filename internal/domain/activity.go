package domain

import (
	"strconv"
	"strings"
)

// ActivityLevel is the multiplier applied to BMR to estimate total daily
// energy expenditure.
type ActivityLevel float64

// Supported activity levels.
const (
	Sedentary  ActivityLevel = 1.2
	Light      ActivityLevel = 1.375
	Moderate   ActivityLevel = 1.55
	Active     ActivityLevel = 1.725
	VeryActive ActivityLevel = 1.9
)

// ActivityOption describes one selectable activity level.
type ActivityOption struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Multiplier  ActivityLevel `json:"multiplier"`
}

var activityOptions = []ActivityOption{
	{Name: "sedentary", Description: "Little or no exercise", Multiplier: Sedentary},
	{Name: "light", Description: "Light exercise 1-3 days a week", Multiplier: Light},
	{Name: "moderate", Description: "Moderate exercise 3-5 days a week", Multiplier: Moderate},
	{Name: "active", Description: "Hard exercise 6-7 days a week", Multiplier: Active},
	{Name: "very_active", Description: "Very hard exercise or a physical job", Multiplier: VeryActive},
}

// ActivityOptions returns the selectable activity levels ordered from least
// to most active.
func ActivityOptions() []ActivityOption {
	out := make([]ActivityOption, len(activityOptions))
	copy(out, activityOptions)
	return out
}

// Valid reports whether a is one of the defined multipliers.
func (a ActivityLevel) Valid() bool {
	for _, o := range activityOptions {
		if o.Multiplier == a {
			return true
		}
	}
	return false
}

// Name returns the alias of a, or "" if a is not a defined level.
func (a ActivityLevel) Name() string {
	for _, o := range activityOptions {
		if o.Multiplier == a {
			return o.Name
		}
	}
	return ""
}

// ParseActivityLevel accepts either a named alias ("moderate", "very-active")
// or the numeric multiplier itself ("1.55").
func ParseActivityLevel(s string) (ActivityLevel, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return 0, invalid("activity", "activity level is required")
	}
	key = strings.ReplaceAll(key, "-", "_")
	for _, o := range activityOptions {
		if o.Name == key {
			return o.Multiplier, nil
		}
	}
	if v, err := strconv.ParseFloat(key, 64); err == nil {
		if a := ActivityLevel(v); a.Valid() {
			return a, nil
		}
	}
	return 0, invalid("activity", "unrecognized activity level %q", s)
}
