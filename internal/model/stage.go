package model

import (
	"fmt"
	"time"
)

// TournamentID uniquely identifies a tournament
type TournamentID string

// StageID uniquely identifies a stage within a tournament
type StageID string

// GroupID uniquely identifies a round-robin group
type GroupID string

// StageKind distinguishes group stages from knockout stages
type StageKind string

const (
	StageKindRoundRobin StageKind = "round_robin"
	StageKindKnockout   StageKind = "knockout"
)

// StageStatus represents the current phase of a stage
type StageStatus string

const (
	StageStatusInProgress StageStatus = "in_progress"
	StageStatusClosed     StageStatus = "closed"
)

// Stage config limits
const (
	MinGroups         = 1
	MaxGroups         = 16
	MinAdvanceCount   = 1
	MaxAdvanceCount   = 4
	MinBestThirdCount = 1
	MaxBestThirdCount = 4
)

// Tournament is the top-level competition record
type Tournament struct {
	ID        TournamentID
	Code      string // Short shareable code shown on draw sheets
	Name      string
	Format    MatchFormat // Default format for knockout stages
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StageConfig holds the round-robin stage options
type StageConfig struct {
	NumberOfGroups int
	AdvanceCount   int
	MatchFormat    MatchFormat
	AllowBestThird bool
	BestThirdCount int
}

// DefaultStageConfig returns the default round-robin configuration
func DefaultStageConfig() StageConfig {
	return StageConfig{
		NumberOfGroups: 4,
		AdvanceCount:   2,
		MatchFormat:    DefaultMatchFormat,
	}
}

// Validate checks the config against the supported ranges
func (c StageConfig) Validate() error {
	if c.NumberOfGroups < MinGroups || c.NumberOfGroups > MaxGroups {
		return fmt.Errorf("%w: number of groups must be %d-%d, got %d", ErrInvalidStageConfig, MinGroups, MaxGroups, c.NumberOfGroups)
	}
	if c.AdvanceCount < MinAdvanceCount || c.AdvanceCount > MaxAdvanceCount {
		return fmt.Errorf("%w: advance count must be %d-%d, got %d", ErrInvalidStageConfig, MinAdvanceCount, MaxAdvanceCount, c.AdvanceCount)
	}
	switch c.MatchFormat {
	case FormatBestOf3, FormatBestOf5, FormatBestOf7:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMatchFormat, c.MatchFormat)
	}
	if c.AllowBestThird && (c.BestThirdCount < MinBestThirdCount || c.BestThirdCount > MaxBestThirdCount) {
		return fmt.Errorf("%w: best third count must be %d-%d, got %d", ErrInvalidStageConfig, MinBestThirdCount, MaxBestThirdCount, c.BestThirdCount)
	}
	return nil
}

// Stage is one phase of a tournament: a set of groups or a knockout bracket
type Stage struct {
	ID           StageID
	TournamentID TournamentID
	Kind         StageKind
	Status       StageStatus
	Config       StageConfig
	SourceStage  StageID // Group stage a knockout was generated from
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Format returns the match format used by the stage
func (s *Stage) Format() MatchFormat {
	if s.Config.MatchFormat == "" {
		return DefaultMatchFormat
	}
	return s.Config.MatchFormat
}

// Group is an ordered, named collection of players in a mini round-robin
type Group struct {
	ID        GroupID
	StageID   StageID
	Number    int // 1-indexed, drives snake seeding order
	Name      string
	PlayerIDs []PlayerID
}

// Contains returns true if the player belongs to the group
func (g *Group) Contains(playerID PlayerID) bool {
	for _, id := range g.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the group
func (g *Group) Clone() *Group {
	c := *g
	c.PlayerIDs = append([]PlayerID(nil), g.PlayerIDs...)
	return &c
}
