package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Shuffle performs a cryptographically secure Fisher-Yates shuffle of the
// slice in place. crypto/rand.Int draws uniformly over [0, i], so winner
// selection is unbiased and cannot be predicted from generator state.
func Shuffle[T any](slice []T) error {
	for i := len(slice) - 1; i > 0; i-- {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("failed to generate random number: %w", err)
		}
		j := int(jBig.Int64())
		slice[i], slice[j] = slice[j], slice[i]
	}
	return nil
}

// Pick returns min(count, len(items)) elements drawn without replacement,
// leaving the input slice untouched.
func Pick[T any](items []T, count int) ([]T, error) {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	if err := Shuffle(shuffled); err != nil {
		return nil, err
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count], nil
}
