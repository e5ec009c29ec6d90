package qualifier

import (
	"fmt"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// ClashWarning is a first round same-group pairing that could not be repaired
type ClashWarning struct {
	GroupID model.GroupID
	SeedA   int
	SeedB   int
	PlayerA model.PlayerID
	PlayerB model.PlayerID
}

func (w ClashWarning) String() string {
	return fmt.Sprintf("seeds %d and %d are both from group %s", w.SeedA, w.SeedB, w.GroupID)
}

func sameGroup(a, b Qualifier) bool {
	return a.GroupID == b.GroupID
}

// CountSameGroupClashes counts first round pairings between players from the same group
func CountSameGroupClashes(qualifiers []Qualifier) int {
	ordered := bySeed(qualifiers)
	count := 0
	for _, pair := range firstRoundPairs(len(ordered)) {
		if sameGroup(ordered[pair[0]-1], ordered[pair[1]-1]) {
			count++
		}
	}
	return count
}

// AvoidSameGroupClashes walks the first round pairings once. For each pairing
// of two players from the same group, the weaker one is swapped with the first
// player from the bottom half of the seeds whose move creates no new clash on
// either side. Clashes that cannot be repaired are returned as warnings.
// KO seeds are renumbered from the final order.
func AvoidSameGroupClashes(qualifiers []Qualifier) ([]Qualifier, []ClashWarning) {
	ordered := bySeed(qualifiers)
	n := len(ordered)
	if n < 2 {
		return renumber(ordered), nil
	}

	pairs := firstRoundPairs(n)
	partnerOf := make(map[int]int, n)
	for _, pair := range pairs {
		partnerOf[pair[0]] = pair[1]
		partnerOf[pair[1]] = pair[0]
	}
	at := func(seed int) Qualifier { return ordered[seed-1] }

	var warnings []ClashWarning
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		if !sameGroup(at(a), at(b)) {
			continue
		}

		weaker, partner := max(a, b), min(a, b)
		swapped := false
		for c := n/2 + 1; c <= n; c++ {
			if c == weaker || c == partner {
				continue
			}
			incoming, outgoing := at(c), at(weaker)
			if sameGroup(incoming, at(partner)) {
				continue
			}
			if cp, ok := partnerOf[c]; ok && sameGroup(outgoing, at(cp)) {
				continue
			}
			ordered[weaker-1], ordered[c-1] = incoming, outgoing
			swapped = true
			break
		}

		if !swapped {
			warnings = append(warnings, ClashWarning{
				GroupID: at(a).GroupID,
				SeedA:   a,
				SeedB:   b,
				PlayerA: at(a).PlayerID,
				PlayerB: at(b).PlayerID,
			})
		}
	}

	return renumber(ordered), warnings
}

func renumber(qualifiers []Qualifier) []Qualifier {
	for i := range qualifiers {
		qualifiers[i].KOSeed = i + 1
	}
	return qualifiers
}
