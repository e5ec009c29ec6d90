package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// MaxSeed is the highest explicit seed rank a player can carry
const MaxSeed = 64

// Player represents a tournament entrant
type Player struct {
	ID           PlayerID
	TournamentID TournamentID
	Name         string
	Club         string // Optional affiliation
	Seed         *int   // Explicit seed rank (1 = best), nil when unseeded
	CreatedAt    time.Time
}

// HasSeed returns true if the player carries a usable explicit seed
func (p *Player) HasSeed() bool {
	return p.Seed != nil && *p.Seed >= 1 && *p.Seed <= MaxSeed
}

// SeedValue returns the explicit seed, or 0 when unseeded
func (p *Player) SeedValue() int {
	if !p.HasSeed() {
		return 0
	}
	return *p.Seed
}

// SeedPtr is a small helper for building players with an explicit seed
func SeedPtr(seed int) *int {
	return &seed
}

// PlayerIndex maps player ids to players for fast lookup
func PlayerIndex(players []Player) map[PlayerID]Player {
	index := make(map[PlayerID]Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return index
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	c := *p
	if p.Seed != nil {
		c.Seed = SeedPtr(*p.Seed)
	}
	return &c
}
