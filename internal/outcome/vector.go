package outcome

import (
	"fmt"
	"math"
)

// Vector holds one value per Kind. As a chance vector every component is
// non-negative and the components sum to 1. As an offset vector the values
// are unconstrained deltas.
type Vector [NumKinds]float64

// Of builds a Vector from the four components in canonical order.
func Of(crit, success, failure, disaster float64) Vector {
	return Vector{crit, success, failure, disaster}
}

// Sum returns the total of all four components.
func (v Vector) Sum() float64 {
	return v[Crit] + v[Success] + v[Failure] + v[Disaster]
}

// Add returns the component-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

// Scale returns v with every component multiplied by f.
func (v Vector) Scale(f float64) Vector {
	for i := range v {
		v[i] *= f
	}
	return v
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// IsDistribution reports whether v is a valid chance vector: finite,
// non-negative, summing to 1 within tol.
func (v Vector) IsDistribution(tol float64) bool {
	if !v.IsFinite() {
		return false
	}
	for _, x := range v {
		if x < 0 {
			return false
		}
	}
	return math.Abs(v.Sum()-1.0) <= tol
}

// Percentages rounds each component to a whole percent.
func (v Vector) Percentages() [NumKinds]int {
	var out [NumKinds]int
	for i, x := range v {
		out[i] = int(math.Round(100 * x))
	}
	return out
}

// Map returns the vector keyed by outcome name.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, NumKinds)
	for _, k := range Kinds {
		m[k.String()] = v[k]
	}
	return m
}

// FromNames builds a Vector from outcome-name keys. Missing keys are zero;
// unknown keys are an error.
func FromNames(m map[string]float64) (Vector, error) {
	var v Vector
	for name, x := range m {
		k, err := ParseKind(name)
		if err != nil {
			return Vector{}, err
		}
		v[k] = x
	}
	return v, nil
}

func (v Vector) String() string {
	return fmt.Sprintf("{crit:%.4f success:%.4f failure:%.4f disaster:%.4f}",
		v[Crit], v[Success], v[Failure], v[Disaster])
}
