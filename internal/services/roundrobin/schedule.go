package roundrobin

import (
	"fmt"
	"sort"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

const (
	// MinGroupSize is the smallest group that can be scheduled
	MinGroupSize = 2
	// MaxGroupSize is the largest group that can be scheduled
	MaxGroupSize = 32
)

// ByeID is the synthetic opponent added to odd-sized groups
const ByeID model.PlayerID = "__bye__"

// Fixture is one scheduled pairing.
// For bye fixtures the real player is always Player1ID and Player2ID is ByeID.
type Fixture struct {
	GroupID     model.GroupID
	Round       int // 1-indexed matchday
	Index       int // 0-indexed position within the round
	Player1ID   model.PlayerID
	Player2ID   model.PlayerID
	IsBye       bool
	MatchNumber int // 0 for byes and unnumbered fixtures
}

// GenerateGroupSchedule builds a full round-robin for one group using the circle method.
// Seat 0 stays fixed while every other seat rotates one position per round.
func GenerateGroupSchedule(playerIDs []model.PlayerID) ([]Fixture, error) {
	if err := checkGroupSize(len(playerIDs)); err != nil {
		return nil, err
	}

	seen := make(map[model.PlayerID]bool, len(playerIDs))
	for _, id := range playerIDs {
		if id == "" || id == ByeID || seen[id] {
			return nil, fmt.Errorf("%w: %q", model.ErrDuplicatePlayer, id)
		}
		seen[id] = true
	}

	seats := make([]model.PlayerID, 0, len(playerIDs)+1)
	seats = append(seats, playerIDs...)
	if len(seats)%2 == 1 {
		seats = append(seats, ByeID)
	}

	n := len(seats)
	rounds := n - 1
	fixtures := make([]Fixture, 0, rounds*n/2)

	for round := 0; round < rounds; round++ {
		for i := 0; i < n/2; i++ {
			left := seats[i]
			right := seats[n-1-i]

			fixture := Fixture{
				Round:     round + 1,
				Index:     i,
				Player1ID: left,
				Player2ID: right,
			}
			if left == ByeID || right == ByeID {
				fixture.IsBye = true
				if left == ByeID {
					fixture.Player1ID, fixture.Player2ID = right, left
				}
			}
			fixtures = append(fixtures, fixture)
		}
		rotateSeats(seats)
	}

	return fixtures, nil
}

// rotateSeats moves the last seat to position 1, shifting the rest along.
// Seat 0 never moves.
func rotateSeats(seats []model.PlayerID) {
	if len(seats) <= 2 {
		return
	}
	last := seats[len(seats)-1]
	copy(seats[2:], seats[1:len(seats)-1])
	seats[1] = last
}

func checkGroupSize(n int) error {
	if n < MinGroupSize {
		return fmt.Errorf("%w: need at least %d, got %d", model.ErrGroupTooSmall, MinGroupSize, n)
	}
	if n > MaxGroupSize {
		return fmt.Errorf("%w: at most %d allowed, got %d", model.ErrGroupTooLarge, MaxGroupSize, n)
	}
	return nil
}

// GenerateMultiGroupSchedule schedules every group, then numbers real fixtures
// matchday by matchday across all groups so round N of every group is played
// together. Numbering starts after matchNumberOffset.
func GenerateMultiGroupSchedule(groups []model.Group, matchNumberOffset int) ([]Fixture, error) {
	ordered := make([]model.Group, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	perGroup := make([][]Fixture, len(ordered))
	maxRound := 0
	total := 0
	for gi, group := range ordered {
		fixtures, err := GenerateGroupSchedule(group.PlayerIDs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", group.Name, err)
		}
		for i := range fixtures {
			fixtures[i].GroupID = group.ID
			if fixtures[i].Round > maxRound {
				maxRound = fixtures[i].Round
			}
		}
		perGroup[gi] = fixtures
		total += len(fixtures)
	}

	result := make([]Fixture, 0, total)
	number := matchNumberOffset
	for round := 1; round <= maxRound; round++ {
		for _, fixtures := range perGroup {
			for _, f := range fixtures {
				if f.Round != round {
					continue
				}
				if !f.IsBye {
					number++
					f.MatchNumber = number
				}
				result = append(result, f)
			}
		}
	}

	return result, nil
}

// VerifyResult reports whether a fixture list is a complete round-robin
type VerifyResult struct {
	Valid  bool
	Reason string
}

func failed(format string, args ...any) VerifyResult {
	return VerifyResult{Reason: fmt.Sprintf(format, args...)}
}

type pairKey struct {
	a, b model.PlayerID
}

func newPairKey(x, y model.PlayerID) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

// VerifySchedule checks that every pair of players meets exactly once and
// nobody is booked twice in the same round
func VerifySchedule(playerIDs []model.PlayerID, fixtures []Fixture) VerifyResult {
	n := len(playerIDs)
	members := make(map[model.PlayerID]bool, n)
	for _, id := range playerIDs {
		members[id] = true
	}

	expected := n * (n - 1) / 2
	pairs := make(map[pairKey]bool, expected)
	booked := make(map[int]map[model.PlayerID]bool)
	counted := 0

	for _, f := range fixtures {
		if booked[f.Round] == nil {
			booked[f.Round] = make(map[model.PlayerID]bool)
		}
		for _, id := range []model.PlayerID{f.Player1ID, f.Player2ID} {
			if id == ByeID {
				continue
			}
			if !members[id] {
				return failed("round %d: unknown player %s", f.Round, id)
			}
			if booked[f.Round][id] {
				return failed("round %d: player %s appears twice", f.Round, id)
			}
			booked[f.Round][id] = true
		}

		if f.IsBye {
			continue
		}
		if f.Player1ID == f.Player2ID {
			return failed("round %d: player %s paired with themselves", f.Round, f.Player1ID)
		}
		key := newPairKey(f.Player1ID, f.Player2ID)
		if pairs[key] {
			return failed("duplicate pairing %s vs %s", key.a, key.b)
		}
		pairs[key] = true
		counted++
	}

	if counted != expected {
		return failed("expected %d fixtures, got %d", expected, counted)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			key := newPairKey(playerIDs[i], playerIDs[j])
			if !pairs[key] {
				return failed("missing pairing %s vs %s", key.a, key.b)
			}
		}
	}

	return VerifyResult{Valid: true}
}
