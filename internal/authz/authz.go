package authz

// Action names shared across resource collections. They mirror the verbs
// the router maps onto HTTP methods.
const (
	ActionList          = "list"
	ActionRetrieve      = "retrieve"
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionPartialUpdate = "partial_update"
	ActionDestroy       = "destroy"
	ActionOwned         = "owned"
	ActionByKey         = "bykey"
	ActionReject        = "reject"
)

// Rule grants a set of actions to a set of groups on one resource
// collection. Rule tables are plain data declared next to the routes;
// there is no wildcard, every group must be named explicitly.
type Rule struct {
	Groups  []string
	Actions []string
}

// Allowed reports whether an actor belonging to actorGroups may perform
// action under the given rule table. The decision is a pure OR across all
// (group, rule) pairs; the first match short-circuits. An actor with zero
// groups is never allowed. Callers must re-evaluate on every request since
// group membership can change between requests.
func Allowed(actorGroups []string, rules []Rule, action string) bool {
	for _, rule := range rules {
		if !containsAction(rule.Actions, action) {
			continue
		}
		for _, group := range actorGroups {
			if containsGroup(rule.Groups, group) {
				return true
			}
		}
	}
	return false
}

func containsAction(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

func containsGroup(groups []string, group string) bool {
	for _, g := range groups {
		if g == group {
			return true
		}
	}
	return false
}
