package mapping

import "sort"

// RankStrategy orders the promoted teams it can place, best final
// standing first. Teams left unranked pair through the lexicographic
// fallback instead.
type RankStrategy interface {
	Rank(promoted map[string]struct{}) []string
}

// DivisionRank orders promoted teams by their finishing position in a
// secondary-division final table. An empty table ranks nothing, which
// pushes every team to the fallback.
type DivisionRank struct {
	Standings []DivisionStanding
}

func (r DivisionRank) Rank(promoted map[string]struct{}) []string {
	if len(r.Standings) == 0 || len(promoted) == 0 {
		return nil
	}

	table := append([]DivisionStanding(nil), r.Standings...)
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Position < table[j].Position
	})
	if len(table) > len(promoted) {
		table = table[:len(promoted)]
	}

	candidates := sortedNames(promoted)
	type placed struct {
		position int
		team     string
	}
	matched := make([]placed, 0, len(promoted))
	taken := make(map[string]struct{}, len(promoted))
	for _, row := range table {
		team, ok := ResolveTeamName(row.TeamName, candidates)
		if !ok {
			continue
		}
		if _, dup := taken[team]; dup {
			continue
		}
		taken[team] = struct{}{}
		matched = append(matched, placed{position: row.Position, team: team})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].position < matched[j].position
	})
	ranked := make([]string, 0, len(matched))
	for _, p := range matched {
		ranked = append(ranked, p.team)
	}
	return ranked
}

// Mapper builds the promoted-to-relegated substitution between two
// seasons' team universes.
type Mapper struct {
	rank RankStrategy
}

// NewMapper wires a ranking strategy. A nil strategy ranks nothing, so
// every pairing comes from the lexicographic fallback.
func NewMapper(rank RankStrategy) *Mapper {
	if rank == nil {
		rank = DivisionRank{}
	}
	return &Mapper{rank: rank}
}

// Build pairs promoted teams with relegated ones. A best-ranked
// promoted team inherits the slot of the relegated team sorting last,
// mirroring promotion order against reversed relegation order. Teams
// the strategy cannot place zip up lexicographically, so the result is
// total over promoted whenever enough relegated slots exist. Identical
// team universes produce no pairs.
func (m *Mapper) Build(currentTeams, comparisonTeams map[string]struct{}) []Pair {
	promoted := sortedDiff(currentTeams, comparisonTeams)
	relegated := sortedDiff(comparisonTeams, currentTeams)
	if len(promoted) == 0 && len(relegated) == 0 {
		return nil
	}

	paired := make(map[string]string, len(promoted))
	order := make([]string, 0, len(promoted))
	usedSlots := make(map[string]struct{}, len(relegated))

	// The ranked pairing only applies when the universes swapped an
	// equal number of teams; otherwise ranks and slots do not line up.
	if len(promoted) == len(relegated) {
		ranked := m.rank.Rank(setOf(promoted))
		for i, team := range ranked {
			if i >= len(relegated) {
				break
			}
			slot := relegated[len(relegated)-1-i]
			paired[team] = slot
			order = append(order, team)
			usedSlots[slot] = struct{}{}
		}
	}

	remaining := make([]string, 0, len(relegated))
	for _, slot := range relegated {
		if _, used := usedSlots[slot]; !used {
			remaining = append(remaining, slot)
		}
	}

	next := 0
	for _, team := range promoted {
		if _, done := paired[team]; done {
			continue
		}
		if next >= len(remaining) {
			break
		}
		paired[team] = remaining[next]
		order = append(order, team)
		next++
	}

	pairs := make([]Pair, 0, len(order))
	for _, team := range order {
		pairs = append(pairs, Pair{Promoted: team, Relegated: paired[team]})
	}
	return pairs
}

func sortedDiff(left, right map[string]struct{}) []string {
	diff := make([]string, 0, len(left))
	for team := range left {
		if _, ok := right[team]; !ok {
			diff = append(diff, team)
		}
	}
	sort.Strings(diff)
	return diff
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func setOf(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
