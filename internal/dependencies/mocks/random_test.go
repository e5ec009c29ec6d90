package mocks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/random"
)

func TestQueueDrawOrder(t *testing.T) {
	orders := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
		{1, 4, 0, 3, 2},
	}
	for _, order := range orders {
		r := NewMockRandom()
		r.QueueDrawOrder(order...)

		s := make([]int, len(order))
		for i := range s {
			s[i] = i
		}
		random.Shuffle[int](r, s)

		assert.Equal(t, order, s)
	}
}

func TestQueueCodes(t *testing.T) {
	r := NewMockRandom()
	r.QueueCodes("AAAAAA", "BBBBBB")

	assert.Equal(t, "AAAAAA", r.String(6, "AB"))
	assert.Equal(t, "BBBBBB", r.String(6, "AB"))
	assert.Equal(t, "", r.String(6, "AB"))
	assert.Equal(t, 0, r.Intn(10))
}
