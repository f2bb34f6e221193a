package main

import "testing"

func TestRebaseTargetDefaultBranches(t *testing.T) {
	// main and master rebase onto their upstream namesake without any
	// remote lookups.
	for _, branch := range []string{"main", "master"} {
		got, err := rebaseTarget(t.Context(), "", branch)
		if err != nil {
			t.Fatalf("rebaseTarget(%s): %v", branch, err)
		}
		if want := "upstream/" + branch; got != want {
			t.Errorf("rebaseTarget(%s) = %q, want %q", branch, got, want)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"test", []string{"test"}},
		{"test, aws , ", []string{"test", "aws"}},
	}
	for _, tt := range tests {
		got := splitCSV(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitCSV(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitCSV(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}
