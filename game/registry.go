package game

import "zombierun/world"

// Registry is the ordered collection of notification rules evaluated on
// every snapshot transition. Rules are registered explicitly at
// construction; evaluation order is registration order and every matching
// rule fires in the same pass.
type Registry struct {
	rules []Message
}

func NewRegistry(rules ...Message) *Registry {
	return &Registry{rules: rules}
}

// DefaultRegistry returns the built-in rule set in its canonical order.
func DefaultRegistry() *Registry {
	return NewRegistry(
		&HumanInfectedMessage{},
		&PlayerJoinedGameMessage{},
		&PlayerReachesDestinationMessage{},
		&AllHumansSurviveMessage{},
		&AllHumansInfectedMessage{},
	)
}

// Evaluate runs every rule against the (old, next) pair and returns the
// ones that fired, in registration order. Rules see the same immutable
// pair and cannot affect each other.
func (r *Registry) Evaluate(old, next *world.Snapshot) []Message {
	var matched []Message
	for _, rule := range r.rules {
		if rule.ShouldShow(old, next) {
			matched = append(matched, rule)
		}
	}
	return matched
}
