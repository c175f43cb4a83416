package scorer

// Weights are the top-level category weights applied to the three category
// scores. They are always kept normalized to sum to 1.0.
type Weights struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Economic      float64 `json:"economic"`
}

// DefaultWeights returns the standard category weight distribution.
func DefaultWeights() Weights {
	return Weights{
		Environmental: 0.4,
		Social:        0.35,
		Economic:      0.25,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Environmental + w.Social + w.Economic
}

// Normalized returns a copy scaled so the weights sum to 1.0. A zero sum
// falls back to the defaults.
func (w Weights) Normalized() Weights {
	total := w.Sum()
	if total <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Environmental: w.Environmental / total,
		Social:        w.Social / total,
		Economic:      w.Economic / total,
	}
}

// Overall combines the three category scores under these weights.
func (w Weights) Overall(c Components) float64 {
	return c.Environmental*w.Environmental + c.Social*w.Social + c.Economic*w.Economic
}

// Fixed sub-component weights within each category.
var (
	environmentalWeights = map[string]float64{
		"carbon_footprint": 0.3,
		"water_usage":      0.2,
		"waste_reduction":  0.25,
		"renewable_energy": 0.25,
	}

	socialWeights = map[string]float64{
		"ethical_sourcing": 0.3,
		"worker_rights":    0.4,
		"community_impact": 0.3,
	}

	economicWeights = map[string]float64{
		"price_fairness": 0.6,
		"durability":     0.4,
	}
)
