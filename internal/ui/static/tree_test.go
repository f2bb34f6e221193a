package static

import (
	"strings"
	"testing"
)

func TestRenderTree(t *testing.T) {
	out := RenderTree([]TreeGroup{
		{
			Name: "billing",
			Entries: []TreeEntry{
				{Name: "billing-api", Status: Cloned},
				{Name: "billing-web", Status: Available},
				{Name: "scratch", Status: Untracked},
			},
		},
		{
			Name:    "shared",
			Global:  true,
			Entries: []TreeEntry{{Name: "common", Status: Cloned}},
		},
	})

	for _, want := range []string{"billing", "shared", "(global)", "billing-api", "├─", "└─", "cloned", "available", "untracked"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Last entry of a group uses the closing connector.
	lines := strings.Split(out, "\n")
	var scratchLine string
	for _, l := range lines {
		if strings.Contains(l, "scratch") {
			scratchLine = l
		}
	}
	if !strings.Contains(scratchLine, "└─") {
		t.Errorf("last entry line = %q, want └─ connector", scratchLine)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"GROUP", "REPO"}, [][]string{
		{"billing", "billing-api"},
		{"shared", "common"},
	})
	for _, want := range []string{"GROUP", "REPO", "billing-api", "common"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if out := RenderTable([]string{"A"}, nil); out != "" {
		t.Errorf("empty rows rendered %q", out)
	}
}
