package authz

import "testing"

var courseRules = []Rule{
	{
		Groups:  []string{"Officer", "Teacher"},
		Actions: []string{ActionList, ActionRetrieve, ActionDestroy, ActionCreate, ActionUpdate, ActionPartialUpdate, ActionOwned},
	},
	{
		Groups:  []string{"Student"},
		Actions: []string{ActionList, ActionRetrieve, ActionOwned},
	},
}

func TestAllowedTable(t *testing.T) {
	tests := []struct {
		name   string
		groups []string
		action string
		want   bool
	}{
		{"officer create", []string{"Officer"}, ActionCreate, true},
		{"officer destroy", []string{"Officer"}, ActionDestroy, true},
		{"teacher update", []string{"Teacher"}, ActionUpdate, true},
		{"teacher owned", []string{"Teacher"}, ActionOwned, true},
		{"student list", []string{"Student"}, ActionList, true},
		{"student retrieve", []string{"Student"}, ActionRetrieve, true},
		{"student owned", []string{"Student"}, ActionOwned, true},
		{"student create denied", []string{"Student"}, ActionCreate, false},
		{"student update denied", []string{"Student"}, ActionUpdate, false},
		{"student destroy denied", []string{"Student"}, ActionDestroy, false},
		{"unknown group denied", []string{"Janitor"}, ActionList, false},
		{"unknown action denied", []string{"Officer"}, "publish", false},
		{"zero groups denied", nil, ActionList, false},
		{"empty groups denied", []string{}, ActionRetrieve, false},
		{"second group grants", []string{"Janitor", "Student"}, ActionList, true},
		{"mixed groups widest wins", []string{"Student", "Teacher"}, ActionCreate, true},
		{"case sensitive group", []string{"student"}, ActionList, false},
		{"case sensitive action", []string{"Student"}, "List", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.groups, courseRules, tt.action); got != tt.want {
				t.Errorf("Allowed(%v, %q) = %v, want %v", tt.groups, tt.action, got, tt.want)
			}
		})
	}
}

// TestAllowedExhaustive cross-checks Allowed against a naive reference over
// every group × action combination of a two-rule table.
func TestAllowedExhaustive(t *testing.T) {
	groups := []string{"Officer", "Teacher", "Student", "Janitor"}
	actions := []string{
		ActionList, ActionRetrieve, ActionCreate, ActionUpdate,
		ActionPartialUpdate, ActionDestroy, ActionOwned, ActionByKey, ActionReject,
	}

	reference := func(group, action string) bool {
		for _, rule := range courseRules {
			inGroup := false
			for _, g := range rule.Groups {
				if g == group {
					inGroup = true
				}
			}
			if !inGroup {
				continue
			}
			for _, a := range rule.Actions {
				if a == action {
					return true
				}
			}
		}
		return false
	}

	for _, group := range groups {
		for _, action := range actions {
			want := reference(group, action)
			if got := Allowed([]string{group}, courseRules, action); got != want {
				t.Errorf("Allowed([%s], %q) = %v, want %v", group, action, got, want)
			}
		}
	}
}

func TestAllowedEmptyRules(t *testing.T) {
	if Allowed([]string{"Officer"}, nil, ActionList) {
		t.Error("empty rule table must deny everything")
	}
	if Allowed([]string{"Officer"}, []Rule{}, ActionList) {
		t.Error("empty rule table must deny everything")
	}
}

func TestAllowedDoesNotMutate(t *testing.T) {
	groups := []string{"Student", "Teacher"}
	rules := []Rule{{Groups: []string{"Teacher"}, Actions: []string{ActionCreate}}}

	Allowed(groups, rules, ActionCreate)

	if groups[0] != "Student" || groups[1] != "Teacher" {
		t.Error("actor groups mutated")
	}
	if rules[0].Groups[0] != "Teacher" || rules[0].Actions[0] != ActionCreate {
		t.Error("rule table mutated")
	}
}
