package domain

import "math"

// BMICategory is the weight band a BMI value falls into.
type BMICategory string

// BMI bands, ordered from lowest to highest.
const (
	SevereUnderweight BMICategory = "Severe underweight"
	MildUnderweight   BMICategory = "Mild underweight"
	Normal            BMICategory = "Normal"
	MildOverweight    BMICategory = "Mild overweight"
	SevereOverweight  BMICategory = "Severe overweight"
)

// Band describes one BMI category. Min is inclusive unless MinExclusive is
// set; Max is exclusive unless MaxInclusive is set.
type Band struct {
	Category       BMICategory `json:"category"`
	Min            float64     `json:"min"`
	Max            float64     `json:"max"`
	MinExclusive   bool        `json:"minExclusive"`
	MaxInclusive   bool        `json:"maxInclusive"`
	Recommendation string      `json:"recommendation"`
}

const (
	recUnderweight = "Focus on increasing calorie and protein intake. Consult a nutritionist for a healthy meal plan."
	recNormal      = "Maintain your healthy lifestyle with a balanced diet and regular exercise."
	recOverweight  = "Consider increasing physical activity and reducing calorie intake. Consult a doctor for a safe weight-loss plan."
)

// bands is the single source of truth for classification: every real BMI
// matches exactly one entry.
var bands = []Band{
	{Category: SevereUnderweight, Min: math.Inf(-1), Max: 17.0, Recommendation: recUnderweight},
	{Category: MildUnderweight, Min: 17.0, Max: 18.5, Recommendation: recUnderweight},
	{Category: Normal, Min: 18.5, Max: 25.0, MaxInclusive: true, Recommendation: recNormal},
	{Category: MildOverweight, Min: 25.0, Max: 27.0, MinExclusive: true, MaxInclusive: true, Recommendation: recOverweight},
	{Category: SevereOverweight, Min: 27.0, Max: math.Inf(1), MinExclusive: true, Recommendation: recOverweight},
}

// Bands returns the BMI classification table.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

func (b Band) contains(bmi float64) bool {
	if b.MinExclusive {
		if bmi <= b.Min {
			return false
		}
	} else if bmi < b.Min {
		return false
	}
	if b.MaxInclusive {
		return bmi <= b.Max
	}
	return bmi < b.Max
}

// ClassifyBMI maps a BMI value onto its category.
func ClassifyBMI(bmi float64) BMICategory {
	for _, b := range bands {
		if b.contains(bmi) {
			return b.Category
		}
	}
	// NaN matches no band.
	return ""
}

// Recommendation returns the advice shown alongside a category.
func (c BMICategory) Recommendation() string {
	for _, b := range bands {
		if b.Category == c {
			return b.Recommendation
		}
	}
	return ""
}
