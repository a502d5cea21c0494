package service

import (
	"math/rand"
	"time"
)

// ShuffleOrder returns a shuffled copy of the given question order
// using Fisher-Yates. The input slice is not modified.
func ShuffleOrder(order []int) []int {
	shuffled := make([]int, len(order))
	copy(shuffled, order)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
