package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
	case response.Tournament:
		o.printTournament(v)
	case []response.Tournament:
		o.printTournaments(v)
	case response.Player:
		o.printPlayers([]response.Player{v})
	case []response.Player:
		o.printPlayers(v)
	case response.Stage:
		o.printStage(v)
	case []response.Stage:
		for _, s := range v {
			o.printStage(s)
		}
	case response.GroupStage:
		o.printGroupStage(v)
	case response.StageStandings:
		o.printStandings(v)
	case response.Match:
		o.printMatches([]response.Match{v})
	case []response.Match:
		o.printMatches(v)
	case response.Knockout:
		o.printKnockout(v)
	case response.ScoreValidation:
		o.printValidation(v)
	case ScheduleResult:
		o.printSchedule(v)
	case BracketResult:
		o.printBracket(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printTournament(t response.Tournament) {
	o.printf("Tournament: %s (%s)\n", t.Name, t.ID)
	o.printf("Code: %s\n", t.Code)
	o.printf("Format: %s\n", t.Format)
}

func (o *Output) printTournaments(ts []response.Tournament) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CODE\tNAME\tFORMAT\tID")
	for _, t := range ts {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Code, t.Name, t.Format, t.ID)
	}
	_ = tw.Flush()
}

func (o *Output) printPlayers(players []response.Player) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SEED\tNAME\tCLUB\tID")
	for _, p := range players {
		seed := "-"
		if p.Seed != nil {
			seed = fmt.Sprint(*p.Seed)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", seed, p.Name, p.Club, p.ID)
	}
	_ = tw.Flush()
}

func (o *Output) printStage(s response.Stage) {
	o.printf("Stage: %s (%s, %s)\n", s.ID, s.Kind, s.Status)
	if s.Config.NumberOfGroups > 0 {
		o.printf("  Groups: %d, advancing per group: %d\n", s.Config.NumberOfGroups, s.Config.AdvanceCount)
	}
	if s.Config.AllowBestThird {
		o.printf("  Best third placed: %d\n", s.Config.BestThirdCount)
	}
	o.printf("  Match format: %s\n", s.Config.MatchFormat)
	if s.SourceStage != "" {
		o.printf("  Drawn from: %s\n", s.SourceStage)
	}
}

func (o *Output) printGroupStage(gs response.GroupStage) {
	o.printStage(gs.Stage)
	for _, g := range gs.Groups {
		o.printf("\nGroup %s (%d players)\n", g.Name, len(g.PlayerIDs))
	}
	o.printf("\nMatches: %d\n", len(gs.Matches))
}

func (o *Output) printStandings(st response.StageStandings) {
	for _, t := range st.Tables {
		o.printf("Group %s (%d/%d played)\n", t.Group.Name, t.Completed, t.Total)
		tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "#\tPLAYER\tP\tW\tL\tGAMES\tPOINTS\t")
		for _, row := range t.Standings {
			mark := ""
			if row.Advances {
				mark = "Q"
			}
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d-%d\t%d-%d\t%s\n",
				row.Rank, row.Name, row.MatchesPlayed, row.Wins, row.Losses,
				row.GamesWon, row.GamesLost, row.PointsScored, row.PointsConceded, mark)
		}
		_ = tw.Flush()
		for _, row := range t.Standings {
			if row.Tiebreak != "" {
				o.printf("  %s: %s\n", row.Name, row.Tiebreak)
			}
		}
		o.printf("\n")
	}
}

func (o *Output) printMatches(matches []response.Match) {
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ROUND\tPOS\tPLAYER 1\tPLAYER 2\tSTATUS\tSCORE\tGAMES\tID")
	for _, m := range matches {
		p2 := m.Player2ID
		if m.IsBye {
			p2 = "(bye)"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%d-%d\t%s\t%s\n",
			m.Round, m.Position, m.Player1ID, p2, m.Status,
			m.Player1Games, m.Player2Games, gameScores(m.Games), m.ID)
	}
	_ = tw.Flush()
}

func gameScores(games []response.Game) string {
	parts := make([]string, 0, len(games))
	for _, g := range games {
		if g.Score1 == nil || g.Score2 == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d-%d", *g.Score1, *g.Score2))
	}
	return strings.Join(parts, " ")
}

func (o *Output) printKnockout(ko response.Knockout) {
	o.printStage(ko.Stage)
	o.printf("Bracket: %d slots, %d byes, %d rounds\n", ko.BracketSize, ko.ByeCount, ko.TotalRounds)
	if len(ko.Qualifiers) > 0 {
		o.printf("\nQualifiers:\n")
		for _, q := range ko.Qualifiers {
			o.printf("  %2d. %s (group rank %d)\n", q.KOSeed, q.Name, q.GroupRank)
		}
	}
	for _, w := range ko.Warnings {
		o.printf("Warning: %s\n", w)
	}

	for round, name := range ko.Rounds {
		o.printf("\n%s\n", name)
		var matches []response.Match
		for _, m := range ko.Matches {
			if m.Round == round+1 {
				matches = append(matches, m)
			}
		}
		o.printMatches(matches)
	}
}

func (o *Output) printValidation(v response.ScoreValidation) {
	if v.Valid {
		o.printf("Valid\n")
		return
	}
	o.printf("Invalid\n")
	for _, e := range v.Errors {
		o.printf("  %s: %s\n", e.Field, e.Message)
	}
}

func (o *Output) printSchedule(s ScheduleResult) {
	round := 0
	for _, f := range s.Fixtures {
		if f.Round != round {
			round = f.Round
			o.printf("Round %d\n", round)
		}
		if f.Bye {
			o.printf("  %s rests\n", f.Player1)
			continue
		}
		o.printf("  %d. %s vs %s\n", f.MatchNumber, f.Player1, f.Player2)
	}
}

func (o *Output) printBracket(b BracketResult) {
	o.printf("Bracket: %d slots, %d byes, %d rounds\n", b.BracketSize, b.ByeCount, b.TotalRounds)
	round := 0
	for _, m := range b.Matches {
		if m.Round != round {
			round = m.Round
			o.printf("\n%s\n", m.Name)
		}
		switch {
		case m.Bye:
			o.printf("  %s (bye)\n", m.Player1)
		case m.Player1 == "" && m.Player2 == "":
			o.printf("  TBD\n")
		default:
			o.printf("  %s vs %s\n", orTBD(m.Player1), orTBD(m.Player2))
		}
	}
}

func orTBD(s string) string {
	if s == "" {
		return "TBD"
	}
	return s
}
