// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "math/rand/v2"

// Shuffled returns a permuted copy of items. The permutation is a
// Fisher-Yates shuffle driven by seed, so the same seed always yields
// the same order. items is not modified.
func Shuffled[T any](items []T, seed uint64) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	random := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := random.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// RandomBytes returns length pseudo-random bytes determined by seed.
// The output is effectively incompressible.
func RandomBytes(length int, seed uint64) []byte {
	random := rand.New(rand.NewPCG(seed, ^seed))
	data := make([]byte, length)
	for i := range data {
		data[i] = byte(random.Uint32())
	}
	return data
}
