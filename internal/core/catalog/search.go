package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// source adapts a record slice to fuzzy.Source.
type source []Record

func (s source) String(i int) string { return s[i].Title }
func (s source) Len() int            { return len(s) }

// Match pairs a record with its fuzzy match detail for highlighting.
type Match struct {
	Record  Record
	Indexes []int // matched rune positions in the title
	Score   int
}

// Search fuzzy-matches the query against record titles, best score first.
// A blank query returns every record in catalog order.
func (c *Catalog) Search(query string) []Match {
	records := c.Records()

	if strings.TrimSpace(query) == "" {
		out := make([]Match, len(records))
		for i, r := range records {
			out[i] = Match{Record: r}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, source(records))
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = Match{
			Record:  records[m.Index],
			Indexes: m.MatchedIndexes,
			Score:   m.Score,
		}
	}
	return out
}
