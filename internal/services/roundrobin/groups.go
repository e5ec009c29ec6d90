package roundrobin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// GroupName returns the display name for a 1-indexed group number
func GroupName(number int) string {
	if number >= 1 && number <= 26 {
		return "Group " + string(rune('A'+number-1))
	}
	return fmt.Sprintf("Group %d", number)
}

// SeedingOrder returns players strongest first: explicit seeds ascending,
// then unseeded players by name. Ties fall back to player id.
func SeedingOrder(players []model.Player) []model.Player {
	ordered := make([]model.Player, len(players))
	copy(ordered, players)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.HasSeed() != b.HasSeed() {
			return a.HasSeed()
		}
		if a.HasSeed() && a.SeedValue() != b.SeedValue() {
			return a.SeedValue() < b.SeedValue()
		}
		an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if !a.HasSeed() && an != bn {
			return an < bn
		}
		return a.ID < b.ID
	})
	return ordered
}

// DistributeIntoGroups snakes players into groups in seeding order:
// A, B, C, C, B, A, A, B, ... so every group gets a similar spread of strength.
// Group ids are left empty for the caller to assign.
func DistributeIntoGroups(players []model.Player, numberOfGroups int) ([]model.Group, error) {
	if numberOfGroups < model.MinGroups || numberOfGroups > model.MaxGroups {
		return nil, fmt.Errorf("%w: number of groups must be %d-%d, got %d",
			model.ErrInvalidStageConfig, model.MinGroups, model.MaxGroups, numberOfGroups)
	}
	if len(players) < numberOfGroups*MinGroupSize {
		return nil, fmt.Errorf("%w: %d players cannot fill %d groups of at least %d",
			model.ErrGroupTooSmall, len(players), numberOfGroups, MinGroupSize)
	}
	largest := (len(players) + numberOfGroups - 1) / numberOfGroups
	if largest > MaxGroupSize {
		return nil, fmt.Errorf("%w: %d players in %d groups gives %d per group, max %d",
			model.ErrGroupTooLarge, len(players), numberOfGroups, largest, MaxGroupSize)
	}

	groups := make([]model.Group, numberOfGroups)
	for i := range groups {
		groups[i] = model.Group{
			Number:    i + 1,
			Name:      GroupName(i + 1),
			PlayerIDs: make([]model.PlayerID, 0, largest),
		}
	}

	for i, p := range SeedingOrder(players) {
		pass := i / numberOfGroups
		idx := i % numberOfGroups
		if pass%2 == 1 {
			idx = numberOfGroups - 1 - idx
		}
		groups[idx].PlayerIDs = append(groups[idx].PlayerIDs, p.ID)
	}

	return groups, nil
}
