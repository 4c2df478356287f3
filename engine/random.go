package engine

import "math/rand"

// RandomLegalColumn picks uniformly among the open columns, or returns Full.
func RandomLegalColumn(s *GameState, rng *rand.Rand) int {
	cands := s.LegalColumns()
	if len(cands) == 0 {
		return Full
	}
	return cands[rng.Intn(len(cands))]
}
