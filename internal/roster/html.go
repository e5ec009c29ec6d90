package roster

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// columns holds the cell index of each known column, -1 when absent
type columns struct {
	name, club, seed int
}

var defaultColumns = columns{name: 0, club: 1, seed: 2}

// ParseHTML reads entries from the first table of an HTML entry list.
// A header row naming Player/Name, Club/Team and Seed selects the columns;
// without one the first three cells are read as name, club and seed.
func ParseHTML(r io.Reader) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidRoster, err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: no table found", model.ErrInvalidRoster)
	}

	cols := defaultColumns
	if header := table.Find("tr").Has("th").First(); header.Length() > 0 {
		cols = headerColumns(header.Find("th"))
		if cols.name < 0 {
			return nil, fmt.Errorf("%w: table has no name column", model.ErrInvalidRoster)
		}
	}

	var entries []Entry
	var parseErr error
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if parseErr != nil {
			return
		}
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		cell := func(idx int) string {
			if idx < 0 || idx >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		entry := Entry{Name: cell(cols.name), Club: cell(cols.club)}
		if entry.Name == "" {
			return
		}
		if raw := cell(cols.seed); raw != "" {
			seed, err := strconv.Atoi(raw)
			if err != nil {
				parseErr = fmt.Errorf("%w: row %d: seed %q is not a number", model.ErrInvalidRoster, i+1, raw)
				return
			}
			entry.Seed = model.SeedPtr(seed)
		}
		if err := entry.Validate(); err != nil {
			parseErr = fmt.Errorf("%w: row %d: %w", model.ErrInvalidRoster, i+1, err)
			return
		}
		entries = append(entries, entry)
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return entries, nil
}

func headerColumns(cells *goquery.Selection) columns {
	cols := columns{name: -1, club: -1, seed: -1}
	cells.Each(func(i int, th *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(th.Text()))
		switch {
		case cols.name < 0 && (strings.Contains(label, "name") || strings.Contains(label, "player")):
			cols.name = i
		case cols.club < 0 && (strings.Contains(label, "club") || strings.Contains(label, "team") || strings.Contains(label, "association")):
			cols.club = i
		case cols.seed < 0 && strings.Contains(label, "seed"):
			cols.seed = i
		}
	})
	return cols
}
