package domain

const (
	kgToLb = 2.2046226218
	inToCm = 2.54
)

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "kg" && to == "lb" {
		return v * kgToLb
	}
	if from == "lb" && to == "kg" {
		return v / kgToLb
	}
	return v
}

// HeightToCm converts a height in "cm", "m" or "in" to centimetres.
func HeightToCm(v float64, unit string) (float64, error) {
	switch unit {
	case "", "cm":
		return v, nil
	case "m":
		return v * 100, nil
	case "in":
		return v * inToCm, nil
	}
	return 0, invalid("heightUnit", "unit must be \"cm\", \"m\" or \"in\"")
}

// WeightToKg converts a weight in "kg" or "lb" to kilograms.
func WeightToKg(v float64, unit string) (float64, error) {
	switch unit {
	case "", "kg":
		return v, nil
	case "lb":
		return ConvertWeight(v, "lb", "kg"), nil
	}
	return 0, invalid("weightUnit", "unit must be \"kg\" or \"lb\"")
}
