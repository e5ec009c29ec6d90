package mocks

import (
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/random"
)

// MockRandom replays queued values. Tournament codes come from String and
// draw shuffles from Intn. An empty queue yields "" and 0.
type MockRandom struct {
	codes []string
	intns []int
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	if len(r.intns) == 0 {
		return 0
	}
	v := r.intns[0]
	r.intns = r.intns[1:]
	return v
}

func (r *MockRandom) String(length int, alphabet string) string {
	if len(r.codes) == 0 {
		return ""
	}
	code := r.codes[0]
	r.codes = r.codes[1:]
	return code
}

// QueueCodes queues the codes handed to new tournaments, in order
func (r *MockRandom) QueueCodes(codes ...string) {
	r.codes = append(r.codes, codes...)
}

// QueueDrawOrder queues the swaps that make random.Shuffle over a slice of
// len(order) elements produce order, where order[i] is the original index of
// the element that ends up at position i. order must be a permutation.
func (r *MockRandom) QueueDrawOrder(order ...int) {
	n := len(order)
	current := make([]int, n)
	at := make([]int, n)
	for i := range current {
		current[i] = i
		at[i] = i
	}
	// Shuffle walks from the end, swapping position i with an index j <= i
	for i := n - 1; i > 0; i-- {
		j := at[order[i]]
		r.intns = append(r.intns, j)
		current[i], current[j] = current[j], current[i]
		at[current[i]] = i
		at[current[j]] = j
	}
}
