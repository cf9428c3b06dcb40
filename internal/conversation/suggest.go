// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import "math/rand/v2"

// Sample returns k distinct elements of pool in random order. Every
// k-subset and ordering is equally likely. k is clamped to the number of
// distinct entries. pool is not modified. A nil rng uses the global source.
func Sample(pool []string, k int, rng *rand.Rand) []string {
	seen := make(map[string]bool, len(pool))
	candidates := make([]string, 0, len(pool))
	for _, s := range pool {
		if !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}

	if k > len(candidates) {
		k = len(candidates)
	}
	if k <= 0 {
		return []string{}
	}

	swap := func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] }
	if rng != nil {
		rng.Shuffle(len(candidates), swap)
	} else {
		rand.Shuffle(len(candidates), swap)
	}
	return candidates[:k:k]
}
