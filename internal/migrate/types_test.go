package migrate

import (
	"reflect"
	"testing"
)

func TestNewSelection(t *testing.T) {
	tests := []struct {
		name               string
		repos, rpms, certs bool
		want               []Category
	}{
		{"none selects all", false, false, false, []Category{Repos, RPMs, Certs}},
		{"repos only", true, false, false, []Category{Repos}},
		{"rpms only", false, true, false, []Category{RPMs}},
		{"certs only", false, false, true, []Category{Certs}},
		{"combination", true, false, true, []Category{Repos, Certs}},
		{"all explicit", true, true, true, []Category{Repos, RPMs, Certs}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection(tt.repos, tt.rpms, tt.certs)
			if got := sel.Categories(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Categories() = %v, want %v", got, tt.want)
			}
			for _, c := range AllCategories {
				want := false
				for _, w := range tt.want {
					if w == c {
						want = true
					}
				}
				if sel.Has(c) != want {
					t.Errorf("Has(%s) = %v, want %v", c, sel.Has(c), want)
				}
			}
		})
	}
}

func TestSelectionString(t *testing.T) {
	if got := NewSelection(false, false, false).String(); got != "repos,rpms,certs" {
		t.Errorf("String() = %q", got)
	}
	if got := NewSelection(false, true, false).String(); got != "rpms" {
		t.Errorf("String() = %q", got)
	}
	if NewSelection(true, true, true).Has(Category("other")) {
		t.Error("unknown category must never be selected")
	}
}

func TestIsDistributionRepo(t *testing.T) {
	tests := map[string]bool{
		"fedora.repo":                 true,
		"fedora-updates.repo":         true,
		"fedora-cisco-openh264.repo":  true,
		"fedora":                      true,
		"myrepo.repo":                 false,
		"rpmfusion-free.repo":         false,
		"my-fedora.repo":              false,
		"Fedora.repo":                 false,
		"_copr:copr.fedorainfracloud": false,
	}
	for name, want := range tests {
		if got := IsDistributionRepo(name); got != want {
			t.Errorf("IsDistributionRepo(%q) = %v, want %v", name, got, want)
		}
	}
}
