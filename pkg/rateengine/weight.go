package rateengine

import "math"

// ResolveWeight derives the billable weight for a package against a rate
// card's weight slab and increment.
//
// Chargeable weight is the greater of dead weight and volumetric weight.
// When chargeable fits within the slab the final weight is the slab itself
// (minimum billable unit); otherwise the remainder is rounded up to whole
// increments. The returned final weight is always weightSlab + k*increment
// for some integer k >= 0 and never less than chargeable.
func ResolveWeight(pkg PackageDetails, weightSlab, incrementWeight float64) (WeightDetails, error) {
	switch {
	case pkg.Length <= 0:
		return WeightDetails{}, &InvalidWeightError{Field: "length", Value: pkg.Length}
	case pkg.Breadth <= 0:
		return WeightDetails{}, &InvalidWeightError{Field: "breadth", Value: pkg.Breadth}
	case pkg.Height <= 0:
		return WeightDetails{}, &InvalidWeightError{Field: "height", Value: pkg.Height}
	case pkg.DeadWeight <= 0:
		return WeightDetails{}, &InvalidWeightError{Field: "deadWeight", Value: pkg.DeadWeight}
	case weightSlab <= 0:
		return WeightDetails{}, &InvalidWeightError{Field: "weight_slab", Value: weightSlab}
	case incrementWeight <= 0:
		return WeightDetails{}, &InvalidWeightError{Field: "increment_weight", Value: incrementWeight}
	}

	volumetric := pkg.VolumetricWeight()
	chargeable := math.Max(pkg.DeadWeight, volumetric)

	final := weightSlab
	if chargeable > weightSlab {
		increments := math.Ceil((chargeable - weightSlab) / incrementWeight)
		final = weightSlab + increments*incrementWeight
	}

	return WeightDetails{
		Actual:               pkg.DeadWeight,
		Volumetric:           volumetric,
		Chargeable:           chargeable,
		Min:                  weightSlab,
		WeightIncrementRatio: incrementWeight,
		FinalWeight:          final,
	}, nil
}

// BillableIncrements returns the number of whole increments between the
// resolved final weight and the slab. It works off the resolved final weight
// rather than the raw chargeable weight so that a weight exactly at the slab
// never produces a spurious increment from float noise.
func BillableIncrements(w WeightDetails) int {
	if w.WeightIncrementRatio <= 0 || w.FinalWeight <= w.Min {
		return 0
	}
	return int(math.Round((w.FinalWeight - w.Min) / w.WeightIncrementRatio))
}
