package globetrotter

import (
	"errors"
	"math/rand/v2"
)

var (
	// ErrEmptyPool means the destination pool has no records at all.
	ErrEmptyPool = errors.New("destination pool is empty")

	// ErrInsufficientDistractors means the pool cannot supply three
	// wrong-answer cities distinct from each other and from the target.
	ErrInsufficientDistractors = errors.New("not enough distinct cities for distractors")
)

const distractorCount = 3

// Round is one question: a target destination, a shuffled list of four
// distinct city options containing the target's city, and one clue
// picked from the target's clue list.
type Round struct {
	Destination Destination
	Options     []string
	Clue        string
}

// SelectRound picks a target uniformly at random from pool, three
// distractor cities uniformly from the rest, and shuffles the four
// options so the correct answer has no fixed position. Distractors are
// compared by city name rather than ID, so duplicate-city records can
// never produce two identical options. The rng is injected so callers
// can seed it for deterministic tests.
func SelectRound(pool []Destination, rng *rand.Rand) (Round, error) {
	if len(pool) == 0 {
		return Round{}, ErrEmptyPool
	}

	target := pool[rng.IntN(len(pool))]

	seen := map[string]struct{}{target.City: {}}
	candidates := make([]string, 0, len(pool))
	for _, d := range pool {
		if _, ok := seen[d.City]; ok {
			continue
		}
		seen[d.City] = struct{}{}
		candidates = append(candidates, d.City)
	}
	if len(candidates) < distractorCount {
		return Round{}, ErrInsufficientDistractors
	}

	// Shuffling the candidate list and taking a prefix is a uniform
	// sample without replacement.
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	options := make([]string, 0, distractorCount+1)
	options = append(options, target.City)
	options = append(options, candidates[:distractorCount]...)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	var clue string
	if len(target.Clues) > 0 {
		clue = target.Clues[rng.IntN(len(target.Clues))]
	}

	return Round{
		Destination: target,
		Options:     options,
		Clue:        clue,
	}, nil
}
