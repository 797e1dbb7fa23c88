package globetrotter

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func pool(cities ...string) []Destination {
	ds := make([]Destination, len(cities))
	for i, c := range cities {
		ds[i] = Destination{
			ID:    c + "-id",
			City:  c,
			Clues: []string{"clue one for " + c, "clue two for " + c},
		}
	}
	return ds
}

func TestSelectRoundOptions(t *testing.T) {
	p := pool("Paris", "Tokyo", "Lima", "Oslo", "Cairo")
	rng := testRNG(1)

	for range 100 {
		round, err := SelectRound(p, rng)
		if err != nil {
			t.Fatalf("SelectRound: %v", err)
		}

		if len(round.Options) != 4 {
			t.Fatalf("expected 4 options, got %d: %v", len(round.Options), round.Options)
		}
		if !slices.Contains(round.Options, round.Destination.City) {
			t.Errorf("options %v missing target city %q", round.Options, round.Destination.City)
		}

		seen := map[string]bool{}
		for _, opt := range round.Options {
			if seen[opt] {
				t.Errorf("duplicate option %q in %v", opt, round.Options)
			}
			seen[opt] = true
			if !slices.ContainsFunc(p, func(d Destination) bool { return d.City == opt }) {
				t.Errorf("option %q not from pool", opt)
			}
		}

		if round.Clue == "" {
			t.Error("expected a clue")
		}
		if !slices.Contains(round.Destination.Clues, round.Clue) {
			t.Errorf("clue %q not from target's clues", round.Clue)
		}
	}
}

func TestSelectRoundEmptyPool(t *testing.T) {
	_, err := SelectRound(nil, testRNG(1))
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestSelectRoundTooFewCities(t *testing.T) {
	_, err := SelectRound(pool("Paris", "Tokyo", "Lima"), testRNG(1))
	if !errors.Is(err, ErrInsufficientDistractors) {
		t.Fatalf("expected ErrInsufficientDistractors, got %v", err)
	}
}

func TestSelectRoundDuplicateCityRecords(t *testing.T) {
	// Two records share a city name; only 3 distinct names exist, so
	// selection must fail rather than offer "Paris" twice.
	p := pool("Paris", "Tokyo", "Lima")
	dup := p[0]
	dup.ID = "paris-duplicate"
	p = append(p, dup)

	rng := testRNG(7)
	for range 50 {
		_, err := SelectRound(p, rng)
		if !errors.Is(err, ErrInsufficientDistractors) {
			t.Fatalf("expected ErrInsufficientDistractors, got %v", err)
		}
	}
}

func TestSelectRoundDuplicateCityWithEnoughOthers(t *testing.T) {
	p := pool("Paris", "Tokyo", "Lima", "Oslo", "Cairo")
	dup := p[1]
	dup.ID = "tokyo-duplicate"
	p = append(p, dup)

	rng := testRNG(7)
	for range 200 {
		round, err := SelectRound(p, rng)
		if err != nil {
			t.Fatalf("SelectRound: %v", err)
		}
		count := 0
		for _, opt := range round.Options {
			if opt == round.Destination.City {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("target city appears %d times in %v", count, round.Options)
		}
	}
}

func TestSelectRoundPositionDistribution(t *testing.T) {
	p := pool("Paris", "Tokyo", "Lima", "Oslo", "Cairo")
	rng := testRNG(42)

	const trials = 4000
	positions := [4]int{}
	for range trials {
		round, err := SelectRound(p, rng)
		if err != nil {
			t.Fatalf("SelectRound: %v", err)
		}
		positions[slices.Index(round.Options, round.Destination.City)]++
	}

	// Roughly uniform: each slot should hold the correct answer about
	// a quarter of the time. A wide tolerance keeps the test stable.
	for i, n := range positions {
		frac := float64(n) / trials
		if frac < 0.18 || frac > 0.32 {
			t.Errorf("slot %d held the answer %.1f%% of trials, want ~25%%", i, frac*100)
		}
	}
}

func TestGrade(t *testing.T) {
	target := Destination{City: "Tokyo"}

	if !Grade("Tokyo", target) {
		t.Error("exact match should be correct")
	}
	if Grade("tokyo", target) {
		t.Error("comparison is case-sensitive")
	}
	if Grade("Kyoto", target) {
		t.Error("wrong city should be incorrect")
	}
}
