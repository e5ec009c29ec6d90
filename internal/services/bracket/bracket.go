package bracket

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/random"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

const (
	// MinPlayers is the smallest field a knockout can be drawn for
	MinPlayers = 2
	// MaxPlayers is the largest field a knockout can be drawn for
	MaxPlayers = 256
)

// SlotAssignment is one bracket position holding a player or a bye
type SlotAssignment struct {
	Position int // 0-indexed, top of the draw first
	Seed     int // Rank placed here; ranks beyond the field size are byes
	PlayerID model.PlayerID
	IsBye    bool
}

// FirstRoundMatch pairs two adjacent slots.
// NextMatchIndex is the round two match the winner feeds, -1 for a final.
type FirstRoundMatch struct {
	Index             int
	Slot1             SlotAssignment
	Slot2             SlotAssignment
	IsBye             bool
	AdvancingPlayerID model.PlayerID // Set for byes only
	NextMatchIndex    int
	NextSlot          int
}

// Bracket is a seeded single elimination draw
type Bracket struct {
	BracketSize       int
	ByeCount          int
	TotalRounds       int
	Ranking           []model.PlayerID // Rank order, index 0 is seed 1
	Slots             []SlotAssignment
	FirstRoundMatches []FirstRoundMatch
}

// NextPowerOfTwo returns the smallest power of two >= n
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// SeedOrder returns the rank placed at each bracket position.
// Starting from [1], every doubling replaces x with (x, 2s+1-x), so seeds 1
// and 2 can only meet in the final, 1-4 only from the semi finals, and so on.
func SeedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		s := len(order)
		next := make([]int, 0, 2*s)
		for _, x := range order {
			next = append(next, x, 2*s+1-x)
		}
		order = next
	}
	return order
}

// RankPlayers orders players for the draw. Explicit seeds claim their rank;
// everyone else is shuffled into the ranks that remain. A seed that is out of
// range or already taken falls back to the first free rank.
func RankPlayers(players []model.Player, rnd random.Random) []model.PlayerID {
	if rnd == nil {
		rnd = random.New()
	}
	n := len(players)
	ranks := make([]model.PlayerID, n)

	var seeded, unseeded []model.Player
	for _, p := range players {
		if p.HasSeed() {
			seeded = append(seeded, p)
		} else {
			unseeded = append(unseeded, p)
		}
	}
	sort.SliceStable(seeded, func(i, j int) bool {
		if seeded[i].SeedValue() != seeded[j].SeedValue() {
			return seeded[i].SeedValue() < seeded[j].SeedValue()
		}
		return seeded[i].ID < seeded[j].ID
	})

	var overflow []model.PlayerID
	for _, p := range seeded {
		seed := p.SeedValue()
		if seed <= n && ranks[seed-1] == "" {
			ranks[seed-1] = p.ID
			continue
		}
		overflow = append(overflow, p.ID)
	}

	// Sort before shuffling so the result depends only on the random source
	sort.Slice(unseeded, func(i, j int) bool { return unseeded[i].ID < unseeded[j].ID })
	random.Shuffle(rnd, unseeded)

	fill := overflow
	for _, p := range unseeded {
		fill = append(fill, p.ID)
	}
	next := 0
	for i := range ranks {
		if ranks[i] == "" {
			ranks[i] = fill[next]
			next++
		}
	}
	return ranks
}

// GenerateBracket ranks the players and lays out the draw.
// A nil rnd uses a non-deterministic source.
func GenerateBracket(players []model.Player, rnd random.Random) (*Bracket, error) {
	if err := checkFieldSize(len(players)); err != nil {
		return nil, err
	}
	seen := make(map[model.PlayerID]bool, len(players))
	for _, p := range players {
		if p.ID == "" || seen[p.ID] {
			return nil, fmt.Errorf("%w: %q", model.ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
	}
	return FromRanking(RankPlayers(players, rnd))
}

// FromRanking lays out a draw for players already in rank order
func FromRanking(ranking []model.PlayerID) (*Bracket, error) {
	n := len(ranking)
	if err := checkFieldSize(n); err != nil {
		return nil, err
	}

	size := NextPowerOfTwo(n)
	b := &Bracket{
		BracketSize: size,
		ByeCount:    size - n,
		TotalRounds: bits.TrailingZeros(uint(size)),
		Ranking:     append([]model.PlayerID(nil), ranking...),
		Slots:       make([]SlotAssignment, size),
	}

	for pos, seed := range SeedOrder(size) {
		slot := SlotAssignment{Position: pos, Seed: seed}
		if seed > n {
			slot.IsBye = true
		} else {
			slot.PlayerID = ranking[seed-1]
		}
		b.Slots[pos] = slot
	}

	b.FirstRoundMatches = make([]FirstRoundMatch, 0, size/2)
	for i := 0; i < size/2; i++ {
		m := FirstRoundMatch{
			Index:          i,
			Slot1:          b.Slots[2*i],
			Slot2:          b.Slots[2*i+1],
			NextMatchIndex: i / 2,
			NextSlot:       i%2 + 1,
		}
		if b.TotalRounds == 1 {
			m.NextMatchIndex = -1
			m.NextSlot = 0
		}
		switch {
		case m.Slot1.IsBye:
			m.IsBye = true
			m.AdvancingPlayerID = m.Slot2.PlayerID
		case m.Slot2.IsBye:
			m.IsBye = true
			m.AdvancingPlayerID = m.Slot1.PlayerID
		}
		b.FirstRoundMatches = append(b.FirstRoundMatches, m)
	}

	return b, nil
}

func checkFieldSize(n int) error {
	if n < MinPlayers {
		return fmt.Errorf("%w: need at least %d, got %d", model.ErrTooFewPlayers, MinPlayers, n)
	}
	if n > MaxPlayers {
		return fmt.Errorf("%w: at most %d allowed, got %d", model.ErrTooManyPlayers, MaxPlayers, n)
	}
	return nil
}
