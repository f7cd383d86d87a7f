package dashboard

import (
	"testing"

	"github.com/AdamGardelov/paneboard/internal/mux"
)

func namedRows(names ...string) []SessionRow {
	rows := make([]SessionRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, SessionRow{Info: mux.SessionInfo{Name: name}})
	}
	return rows
}

func rowNames(rows []SessionRow) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Info.Name)
	}
	return names
}

func TestFilterRowsEmptyQuery(t *testing.T) {
	rows := namedRows("alpha", "beta")
	if got := filterRows(rows, ""); len(got) != 2 {
		t.Fatalf("filterRows(\"\") = %v", rowNames(got))
	}
	if got := filterRows(rows, "   "); len(got) != 2 {
		t.Fatalf("filterRows(blank) = %v", rowNames(got))
	}
}

func TestFilterRowsFuzzy(t *testing.T) {
	rows := namedRows("alpha", "beta", "gamma")
	got := rowNames(filterRows(rows, "gam"))
	if len(got) != 1 || got[0] != "gamma" {
		t.Fatalf("filterRows(\"gam\") = %v", got)
	}
}

func TestFilterRowsSubsequence(t *testing.T) {
	rows := namedRows("api-server", "web-frontend", "worker")
	got := rowNames(filterRows(rows, "wrk"))
	if len(got) == 0 || got[0] != "worker" {
		t.Fatalf("filterRows(\"wrk\") = %v", got)
	}
}

func TestFilterRowsNoMatch(t *testing.T) {
	rows := namedRows("alpha", "beta")
	if got := filterRows(rows, "zzz"); len(got) != 0 {
		t.Fatalf("filterRows(\"zzz\") = %v", rowNames(got))
	}
}
