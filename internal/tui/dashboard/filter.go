package dashboard

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

type sessionSource []SessionRow

func (s sessionSource) String(i int) string { return s[i].Info.Name }
func (s sessionSource) Len() int            { return len(s) }

// filterRows narrows rows to fuzzy matches of query, best match first.
// An empty query keeps the snapshot order untouched.
func filterRows(rows []SessionRow, query string) []SessionRow {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}
	matches := fuzzy.FindFrom(query, sessionSource(rows))
	out := make([]SessionRow, 0, len(matches))
	for _, match := range matches {
		out = append(out, rows[match.Index])
	}
	return out
}
