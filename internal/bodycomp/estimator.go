// Package bodycomp estimates body composition from anthropometric measurements,
// using the Jackson-Pollock 7-site body density equation and Siri's
// density to body fat conversion.
//
// All functions are pure. Intermediate math runs in full float64 precision and
// rounding happens only at the presentation boundary (see Estimate).
package bodycomp

import "math"

// Jackson-Pollock 7-site generalized equation coefficients.
const (
	maleIntercept   = 1.112
	maleLinear      = 0.00043499
	maleQuadratic   = 0.00000055
	maleAge         = 0.00028826
	femaleIntercept = 1.097
	femaleLinear    = 0.00046971
	femaleQuadratic = 0.00000056
	femaleAge       = 0.00012828
)

// Siri equation constants.
const (
	siriA = 4.95
	siriB = 4.50
)

const (
	sumDecimals     = 2
	densityDecimals = 4
	fatPctDecimals  = 2
	massDecimals    = 2
)

// SumSkinfolds returns the arithmetic sum of the seven sites.
// No range validation is done here.
func SumSkinfolds(chest, axillary, triceps, subscapular, abdominal, suprailiac, thigh float64) float64 {
	return chest + axillary + triceps + subscapular + abdominal + suprailiac + thigh
}

// BodyDensity applies the Jackson-Pollock 7-site equation (g/cm³).
// sum is the sum of seven skinfolds in mm, age is in years.
// An unknown sex yields NaN.
func BodyDensity(sex Sex, age int, sum float64) float64 {
	a := float64(age)
	switch sex {
	case SexMale:
		return maleIntercept - maleLinear*sum + maleQuadratic*sum*sum - maleAge*a
	case SexFemale:
		return femaleIntercept - femaleLinear*sum + femaleQuadratic*sum*sum - femaleAge*a
	default:
		return math.NaN()
	}
}

// BodyFatFromDensity converts body density to body fat percentage (Siri).
// The result is not clamped: a zero density gives +Inf, a very high one a negative percentage.
func BodyFatFromDensity(density float64) float64 {
	return (siriA/density - siriB) * 100
}

// Composition splits the body weight into fat and lean mass.
// Both are rounded independently to 2 decimals; lean mass is derived
// from the unrounded fat mass.
func Composition(weightKg, fatPct float64) Mass {
	fatMass := fatPct / 100 * weightKg
	leanMass := weightKg - fatMass
	return Mass{
		FatMassKg:  Round(fatMass, massDecimals),
		LeanMassKg: Round(leanMass, massDecimals),
	}
}

// Round rounds x half away from zero at the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(x*p) / p
}

// Estimate runs the full pipeline for a measurement input.
// The second return value is false when the input does not pass the
// gate (see MeasurementInput.CanEstimate); that is not an error, the
// trainer simply did not record a full skinfold protocol.
func Estimate(in MeasurementInput) (*CompositionResult, bool) {
	if !in.CanEstimate() {
		return nil, false
	}

	sum := in.Skinfolds.Sum()
	density := BodyDensity(*in.Sex, *in.Age, sum)
	fatPct := BodyFatFromDensity(density)
	mass := Composition(*in.WeightKg, fatPct)

	return &CompositionResult{
		SumSkinfolds: Round(sum, sumDecimals),
		BodyDensity:  Round(density, densityDecimals),
		BodyFatPct:   Round(fatPct, fatPctDecimals),
		FatMassKg:    mass.FatMassKg,
		LeanMassKg:   mass.LeanMassKg,
	}, true
}
