package naming

import "math/rand/v2"

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// FixedPicker always selects the same index, wrapped to the pool size.
type FixedPicker int

// IntN implements Picker.
func (p FixedPicker) IntN(n int) int {
	if n <= 0 || p < 0 {
		return 0
	}
	return int(p) % n
}

// NewSeededPicker returns a deterministic picker. It is not safe for
// concurrent use.
func NewSeededPicker(seed uint64) Picker {
	return rand.New(rand.NewPCG(seed, seed))
}

func choose(p Picker, pool []string) string {
	return pool[p.IntN(len(pool))]
}
