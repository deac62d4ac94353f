package metrics

import "github.com/san-kum/seiqr/internal/dynamo"

// Bounds reports the fraction of observed states that kept every
// compartment inside [0, 1]. NaN counts as a violation.
type Bounds struct {
	name       string
	violations int
	samples    int
}

func NewBounds() *Bounds {
	return &Bounds{name: BoundsName}
}

func (b *Bounds) Name() string {
	return b.name
}

func (b *Bounds) Observe(x dynamo.State, t float64) {
	b.samples++
	for _, val := range x {
		if !(val >= 0 && val <= 1) {
			b.violations++
			break
		}
	}
}

func (b *Bounds) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounds) Violations() int {
	return b.violations
}

func (b *Bounds) Reset() {
	b.violations = 0
	b.samples = 0
}
