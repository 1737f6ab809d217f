package mapping

import "github.com/matchpulse/season-compare/internal/domain/fixture"

type pairKey struct {
	home string
	away string
}

type fixtureIndex map[pairKey]fixture.Fixture

func indexFixtures(fixtures []fixture.Fixture) fixtureIndex {
	index := make(fixtureIndex, len(fixtures))
	for _, f := range fixtures {
		key := pairKey{home: f.HomeTeam, away: f.AwayTeam}
		// First occurrence wins so repeated pairings resolve stably.
		if _, ok := index[key]; !ok {
			index[key] = f
		}
	}
	return index
}

// find looks for the exact pairing first, then the reverse leg. The
// reverse leg covers seasons where home advantage fell the other way.
func (idx fixtureIndex) find(home, away string) (fixture.Fixture, bool) {
	if f, ok := idx[pairKey{home: home, away: away}]; ok {
		return f, true
	}
	f, ok := idx[pairKey{home: away, away: home}]
	return f, ok
}

// Project rewrites every current-season fixture through the
// substitution and joins it to the equivalent comparison-season
// fixture. Output order follows the current fixture list; a fixture
// with no equivalent is kept with MappingFound false rather than
// dropped.
func Project(current, comparison []fixture.Fixture, subs Substitution) []MappedFixture {
	index := indexFixtures(comparison)
	mapped := make([]MappedFixture, 0, len(current))
	for _, f := range current {
		record := MappedFixture{
			Current:        f,
			MappedHomeTeam: subs.Apply(f.HomeTeam),
			MappedAwayTeam: subs.Apply(f.AwayTeam),
		}
		if equivalent, ok := index.find(record.MappedHomeTeam, record.MappedAwayTeam); ok {
			record.Comparison = &equivalent
			record.MappingFound = true
		}
		mapped = append(mapped, record)
	}
	return mapped
}

// FoundCount reports how many mapped fixtures located an equivalent.
func FoundCount(mapped []MappedFixture) int {
	found := 0
	for _, m := range mapped {
		if m.MappingFound {
			found++
		}
	}
	return found
}

// SuccessRate reports the share of mapped fixtures with an equivalent
// found, in percent.
func SuccessRate(mapped []MappedFixture) float64 {
	if len(mapped) == 0 {
		return 0
	}
	return float64(FoundCount(mapped)) / float64(len(mapped)) * 100
}
