package static

import (
	"strings"

	"github.com/dbxdev/dbx/internal/ui/styles"
)

// Status classifies one entry in the repo tree.
type Status int

const (
	// Cloned means the repo is configured and exists on disk.
	Cloned Status = iota
	// Available means the repo is configured but not cloned.
	Available
	// Untracked means the repo exists on disk but is not configured.
	Untracked
)

// TreeEntry is one repo line in the tree.
type TreeEntry struct {
	Name   string
	Status Status
}

// TreeGroup is one group section in the tree.
type TreeGroup struct {
	Name    string
	Global  bool
	Entries []TreeEntry
}

func glyph(s Status) string {
	switch s {
	case Cloned:
		return styles.Cloned
	case Available:
		return styles.Available
	default:
		return styles.Untracked
	}
}

// RenderTree renders the grouped repo listing with a status legend.
func RenderTree(groups []TreeGroup) string {
	var b strings.Builder

	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		header := g.Name
		if g.Global {
			header += styles.MutedStyle.Render(" (global)")
		}
		b.WriteString(styles.PrimaryStyle.Render(header))
		b.WriteString("\n")

		for j, e := range g.Entries {
			connector := "├─"
			if j == len(g.Entries)-1 {
				connector = "└─"
			}
			name := e.Name
			if e.Status == Available {
				name = styles.MutedStyle.Render(name)
			}
			b.WriteString(connector + " " + glyph(e.Status) + " " + name + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Cloned + styles.MutedStyle.Render(" cloned   "))
	b.WriteString(styles.Available + styles.MutedStyle.Render(" available   "))
	b.WriteString(styles.Untracked + styles.MutedStyle.Render(" untracked"))
	b.WriteString("\n")
	return b.String()
}
