package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededRandom_IsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 50; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestSeededRandom_IntnRange(t *testing.T) {
	r := NewSeeded(7)
	for i := 0; i < 200; i++ {
		v := r.Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestSeededRandom_String(t *testing.T) {
	s := NewSeeded(1).String(6, "ABC")
	assert.Len(t, s, 6)
	for _, c := range s {
		assert.Contains(t, "ABC", string(c))
	}
	assert.Equal(t, "", NewSeeded(1).String(0, "ABC"))
}

func TestCryptoRandom_IntnRange(t *testing.T) {
	r := New()
	for i := 0; i < 100; i++ {
		v := r.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
	assert.Equal(t, 0, r.Intn(-1))
}

func TestShuffle_KeepsElements(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(NewSeeded(99), items)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, items)
}

func TestShuffle_SameSeedSameOrder(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	b := []string{"a", "b", "c", "d", "e"}
	Shuffle(NewSeeded(3), a)
	Shuffle(NewSeeded(3), b)
	assert.Equal(t, a, b)
}
