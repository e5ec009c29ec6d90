package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

type RosterSuite struct {
	suite.Suite
}

func TestRosterSuite(t *testing.T) {
	suite.Run(t, new(RosterSuite))
}

func (s *RosterSuite) TestSplitFieldsKeepsQuotedNames() {
	fields, err := SplitFields(`"Ma Long"  "Shandong Luneng" 1`)
	s.Require().NoError(err)
	s.Equal([]string{"Ma Long", "Shandong Luneng", "1"}, fields)
}

func (s *RosterSuite) TestParseLines() {
	input := `
# entry list
"Ma Long" "Shandong" 1
"Fan Zhendong" Bayi 2
Timo
"Truls Moregardh" 5
`
	entries, err := ParseLines(strings.NewReader(input))
	s.Require().NoError(err)
	s.Require().Len(entries, 4)

	s.Equal("Ma Long", entries[0].Name)
	s.Equal("Shandong", entries[0].Club)
	s.Require().NotNil(entries[0].Seed)
	s.Equal(1, *entries[0].Seed)

	s.Equal("Fan Zhendong", entries[1].Name)
	s.Equal("Bayi", entries[1].Club)
	s.Equal(2, *entries[1].Seed)

	s.Equal("Timo", entries[2].Name)
	s.Empty(entries[2].Club)
	s.Nil(entries[2].Seed)

	s.Equal("Truls Moregardh", entries[3].Name)
	s.Empty(entries[3].Club)
	s.Equal(5, *entries[3].Seed)
}

func (s *RosterSuite) TestParseLinesRejectsUnquotedNamesWithSpaces() {
	_, err := ParseLines(strings.NewReader("Ma Long Shandong 1\n"))
	s.ErrorIs(err, model.ErrInvalidRoster)
	s.Contains(err.Error(), "line 1")
}

func (s *RosterSuite) TestParseLinesRejectsSeedOutOfRange() {
	_, err := ParseLines(strings.NewReader(`"A" "X" 65`))
	s.ErrorIs(err, model.ErrInvalidRoster)
	s.ErrorIs(err, model.ErrInvalidSeed)
}

func (s *RosterSuite) TestParseYAMLList() {
	input := `
- name: Ma Long
  club: Shandong
  seed: 1
- name: Timo Boll
`
	entries, err := ParseYAML(strings.NewReader(input))
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("Ma Long", entries[0].Name)
	s.Equal(1, *entries[0].Seed)
	s.Equal("Timo Boll", entries[1].Name)
	s.Nil(entries[1].Seed)
}

func (s *RosterSuite) TestParseYAMLDocument() {
	input := `
players:
  - name: Ma Long
  - name: Fan Zhendong
    seed: 2
`
	entries, err := ParseYAML(strings.NewReader(input))
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(2, *entries[1].Seed)
}

func (s *RosterSuite) TestParseYAMLRequiresName() {
	_, err := ParseYAML(strings.NewReader("- club: Bayi\n"))
	s.ErrorIs(err, model.ErrInvalidRoster)
	s.ErrorIs(err, model.ErrInvalidPlayerName)
}

func (s *RosterSuite) TestParseHTMLWithHeader() {
	input := `<html><body>
<table>
  <tr><th>Seed</th><th>Player</th><th>Club</th></tr>
  <tr><td>1</td><td> Ma Long </td><td>Shandong</td></tr>
  <tr><td></td><td>Timo Boll</td><td>Borussia</td></tr>
  <tr><td></td><td></td><td></td></tr>
</table>
</body></html>`
	entries, err := ParseHTML(strings.NewReader(input))
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("Ma Long", entries[0].Name)
	s.Equal("Shandong", entries[0].Club)
	s.Equal(1, *entries[0].Seed)
	s.Equal("Timo Boll", entries[1].Name)
	s.Nil(entries[1].Seed)
}

func (s *RosterSuite) TestParseHTMLWithoutHeader() {
	input := `<table><tr><td>Ma Long</td><td>Shandong</td><td>3</td></tr></table>`
	entries, err := ParseHTML(strings.NewReader(input))
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(3, *entries[0].Seed)
}

func (s *RosterSuite) TestParseHTMLBadSeed() {
	input := `<table><tr><td>Ma Long</td><td>Shandong</td><td>top</td></tr></table>`
	_, err := ParseHTML(strings.NewReader(input))
	s.ErrorIs(err, model.ErrInvalidRoster)
}

func (s *RosterSuite) TestParseHTMLNoTable() {
	_, err := ParseHTML(strings.NewReader(`<p>nothing here</p>`))
	s.ErrorIs(err, model.ErrInvalidRoster)
}

func (s *RosterSuite) TestFormatFromFilename() {
	s.Equal(FormatYAML, FormatFromFilename("entries.YML"))
	s.Equal(FormatHTML, FormatFromFilename("list.htm"))
	s.Equal(FormatText, FormatFromFilename("list.txt"))
}

func (s *RosterSuite) TestParseUnknownFormat() {
	_, err := Parse(Format("csv"), strings.NewReader(""))
	s.ErrorIs(err, model.ErrInvalidRoster)
}
