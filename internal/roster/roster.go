// Package roster reads entry lists into players-to-be.
// Lists arrive as quoted text lines, YAML documents or HTML entry tables.
package roster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-andiamo/splitter"
	"gopkg.in/yaml.v3"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// Entry is one line of an entry list
type Entry struct {
	Name string `yaml:"name" json:"name"`
	Club string `yaml:"club,omitempty" json:"club,omitempty"`
	Seed *int   `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Validate checks the entry can become a player
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return model.ErrInvalidPlayerName
	}
	if e.Seed != nil && (*e.Seed < 1 || *e.Seed > model.MaxSeed) {
		return fmt.Errorf("%w: %d is outside 1-%d", model.ErrInvalidSeed, *e.Seed, model.MaxSeed)
	}
	return nil
}

// Format selects a parser
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
)

// Parse reads r in the given format
func Parse(format Format, r io.Reader) ([]Entry, error) {
	switch format {
	case FormatText, "":
		return ParseLines(r)
	case FormatYAML:
		return ParseYAML(r)
	case FormatHTML:
		return ParseHTML(r)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", model.ErrInvalidRoster, format)
	}
}

// FormatFromFilename guesses the format from a file extension
func FormatFromFilename(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".html"), strings.HasSuffix(lower, ".htm"):
		return FormatHTML
	default:
		return FormatText
	}
}

// newFieldSplitter splits on spaces while keeping quoted names together
func newFieldSplitter() (splitter.Splitter, error) {
	return splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
}

// SplitFields breaks a line into space separated fields. Double quoted fields
// may contain spaces; the quotes are removed.
func SplitFields(line string) ([]string, error) {
	sp, err := newFieldSplitter()
	if err != nil {
		return nil, err
	}
	parts, err := sp.Split(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields = append(fields, unquote(part))
	}
	return fields, nil
}

func unquote(s string) string {
	switch {
	case len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`):
		return s[1 : len(s)-1]
	case strings.HasPrefix(s, "“") && strings.HasSuffix(s, "”") && len(s) > len("“”"):
		return strings.TrimSuffix(strings.TrimPrefix(s, "“"), "”")
	default:
		return s
	}
}

// ParseLines reads one entry per line: a name, an optional club and an
// optional trailing seed number, e.g. `"Ma Long" "Shandong" 1`.
// Blank lines and lines starting with # are skipped.
func ParseLines(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields, err := SplitFields(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", model.ErrInvalidRoster, lineNo, err)
		}
		entry, err := entryFromFields(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", model.ErrInvalidRoster, lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func entryFromFields(fields []string) (Entry, error) {
	var entry Entry
	if n := len(fields); n > 1 {
		if seed, err := strconv.Atoi(fields[n-1]); err == nil {
			entry.Seed = model.SeedPtr(seed)
			fields = fields[:n-1]
		}
	}

	switch len(fields) {
	case 0:
		return entry, model.ErrInvalidPlayerName
	case 1:
		entry.Name = fields[0]
	case 2:
		entry.Name, entry.Club = fields[0], fields[1]
	default:
		return entry, fmt.Errorf("expected name, club and seed but found %d fields; quote names with spaces", len(fields))
	}
	return entry, entry.Validate()
}

// yamlRoster accepts either a bare list or a document with a players key
type yamlRoster struct {
	Players []Entry `yaml:"players"`
}

// ParseYAML reads entries from a YAML list or a {players: [...]} document
func ParseYAML(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		var doc yamlRoster
		if docErr := yaml.Unmarshal(data, &doc); docErr != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrInvalidRoster, docErr)
		}
		entries = doc.Players
	}

	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", model.ErrInvalidRoster, i+1, err)
		}
	}
	return entries, nil
}
