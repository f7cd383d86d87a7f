package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/AdamGardelov/paneboard/internal/layout"
)

func TestLayoutsTable(t *testing.T) {
	tc := newTestCLI(t)
	writeProjectConfig(t, tc.dir, `
layouts:
  build:
    description: Build loop
    grid: 1x2
`)

	if err := tc.run(t, "layouts"); err != nil {
		t.Fatalf("layouts error: %v", err)
	}
	out := tc.out.String()
	for _, want := range []string{"NAME", "GRID", "SOURCE", "build", "project", "Build loop", "default", "2x2", "builtin"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "layouts NAME") {
		t.Fatalf("missing export hint:\n%s", out)
	}
}

func TestLayoutsJSON(t *testing.T) {
	tc := newTestCLI(t)

	if err := tc.run(t, "layouts", "--json"); err != nil {
		t.Fatalf("layouts --json error: %v", err)
	}
	var payload struct {
		Layouts []layoutSummary `json:"layouts"`
		Total   int             `json:"total"`
	}
	if err := json.Unmarshal(tc.out.Bytes(), &payload); err != nil {
		t.Fatalf("decode json: %v\n%s", err, tc.out.String())
	}
	if payload.Total != len(payload.Layouts) || payload.Total == 0 {
		t.Fatalf("payload = %+v", payload)
	}
	var def *layoutSummary
	for i := range payload.Layouts {
		if payload.Layouts[i].Name == "default" {
			def = &payload.Layouts[i]
		}
	}
	if def == nil {
		t.Fatalf("default layout missing: %+v", payload.Layouts)
	}
	if def.Grid != "2x2" || def.Source != "builtin" {
		t.Fatalf("default summary = %+v", def)
	}
}

func TestLayoutsExport(t *testing.T) {
	tc := newTestCLI(t)

	if err := tc.run(t, "layouts", "dev"); err != nil {
		t.Fatalf("layouts dev error: %v", err)
	}
	out := tc.out.String()
	if !strings.Contains(out, "# layout dev (builtin)") {
		t.Fatalf("missing header:\n%s", out)
	}
	var def layout.LayoutDef
	if err := yaml.Unmarshal([]byte(out), &def); err != nil {
		t.Fatalf("exported yaml does not parse: %v\n%s", err, out)
	}
	if def.Grid != "1x2" {
		t.Fatalf("grid = %q, want 1x2", def.Grid)
	}
	if def.Name != "" {
		t.Fatalf("name should be left to the map key, got %q", def.Name)
	}
}

func TestLayoutsExportUnknown(t *testing.T) {
	tc := newTestCLI(t)
	err := tc.run(t, "layouts", "nope")
	if err == nil || !strings.Contains(err.Error(), `layout "nope" not found`) {
		t.Fatalf("expected unknown layout error, got %v", err)
	}
}
