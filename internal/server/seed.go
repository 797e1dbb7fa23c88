package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/globetrotterhq/globetrotter/internal/globetrotter"
	"github.com/google/uuid"
)

// SeedDestinations loads the starter destination set if the table is
// empty. Idempotent: does nothing once any destinations exist. Real
// content comes from the offline generation pipeline; this set keeps a
// fresh install playable.
func SeedDestinations(ctx context.Context, logger *slog.Logger, store Store) error {
	count, err := store.CountDestinations(ctx)
	if err != nil {
		return fmt.Errorf("counting destinations: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, d := range starterDestinations {
		d.ID = uuid.NewString()
		if err := store.InsertDestination(ctx, d); err != nil {
			return fmt.Errorf("seeding destination %q: %w", d.City, err)
		}
	}

	logger.Info("seeded starter destinations", "count", len(starterDestinations))
	return nil
}

var starterDestinations = []globetrotter.Destination{
	{
		City:    "Paris",
		Country: "France",
		Clues: []string{
			"This city is home to a famous tower that sparkles every night.",
			"Known as the 'City of Love' and a hub for fashion and art.",
		},
		FunFacts: []string{
			"The Eiffel Tower was supposed to be dismantled after 20 years but was saved because it was useful for radio transmissions.",
			"Paris has only one stop sign in the entire city.",
		},
		Trivia: []string{
			"This city is famous for its croissants and macarons.",
			"Paris was originally a Roman city called Lutetia.",
		},
	},
	{
		City:    "Tokyo",
		Country: "Japan",
		Clues: []string{
			"This city has the busiest pedestrian crossing in the world.",
			"You can eat at over 160,000 restaurants in this megacity.",
		},
		FunFacts: []string{
			"Tokyo was originally known as Edo and was a small fishing village.",
			"More Michelin-starred restaurants are here than anywhere else on Earth.",
		},
		Trivia: []string{
			"The city's train system moves over 40 million passengers daily.",
			"Vending machines here sell everything from umbrellas to ramen.",
		},
	},
	{
		City:    "Rome",
		Country: "Italy",
		Clues: []string{
			"Legend says this city was founded by twins raised by a wolf.",
			"Tourists toss coins into a famous fountain here.",
		},
		FunFacts: []string{
			"About €1.5 million in coins is thrown into the Trevi Fountain each year.",
			"This city has a country entirely inside its borders.",
		},
		Trivia: []string{
			"The Colosseum could hold up to 80,000 spectators.",
			"Ancient Romans used urine as mouthwash.",
		},
	},
	{
		City:    "Cairo",
		Country: "Egypt",
		Clues: []string{
			"The only surviving wonder of the ancient world stands near this city.",
			"This capital sits on the banks of the world's longest river.",
		},
		FunFacts: []string{
			"The Great Pyramid was the tallest man-made structure for over 3,800 years.",
			"Cairo is the largest city in Africa and the Middle East.",
		},
		Trivia: []string{
			"The city's name means 'The Victorious' in Arabic.",
			"Cairo's Khan el-Khalili bazaar dates back to the 14th century.",
		},
	},
	{
		City:    "Sydney",
		Country: "Australia",
		Clues: []string{
			"This city's opera house looks like sails billowing in the harbour.",
			"Famous beaches like Bondi draw surfers from around the world.",
		},
		FunFacts: []string{
			"The Sydney Opera House took 14 years to build, a decade longer than planned.",
			"Sydney Harbour Bridge is nicknamed 'The Coathanger'.",
		},
		Trivia: []string{
			"This city hosted the 2000 Summer Olympics.",
			"Over 250 languages are spoken in this multicultural city.",
		},
	},
	{
		City:    "Rio de Janeiro",
		Country: "Brazil",
		Clues: []string{
			"A giant statue watches over this city from a mountaintop.",
			"This city throws the world's biggest carnival every year.",
		},
		FunFacts: []string{
			"Christ the Redeemer was struck by lightning and lost a thumb in 2014.",
			"The name means 'January River', though there is no river.",
		},
		Trivia: []string{
			"Copacabana beach stretches for 4 kilometres.",
			"The city was once the capital of the Portuguese Empire.",
		},
	},
	{
		City:    "Istanbul",
		Country: "Turkey",
		Clues: []string{
			"This city straddles two continents.",
			"A former church, then mosque, then museum dominates its skyline.",
		},
		FunFacts: []string{
			"The Grand Bazaar has over 4,000 shops and is one of the oldest covered markets.",
			"This city has been the capital of three empires.",
		},
		Trivia: []string{
			"Tulips were introduced to Europe from here, not the Netherlands.",
			"The Bosphorus strait divides the European and Asian sides.",
		},
	},
	{
		City:    "Cusco",
		Country: "Peru",
		Clues: []string{
			"This high-altitude city was the capital of the Inca Empire.",
			"Travellers acclimatise here before visiting a famous lost city.",
		},
		FunFacts: []string{
			"Inca stonework here fits so tightly that a knife blade cannot slide between stones.",
			"The city sits at 3,400 metres above sea level.",
		},
		Trivia: []string{
			"Its name means 'navel of the world' in Quechua.",
			"Machu Picchu is reached by train or a four-day trek from here.",
		},
	},
}
