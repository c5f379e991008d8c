package engine

// Predicate decides whether a trigger question's current answer reveals a
// dependent question. present is false when the trigger has no recorded
// answer at all; every predicate fails closed in that case.
type Predicate interface {
	Holds(value Value, present bool) bool
}

type equalsPredicate struct {
	want string
}

func (p equalsPredicate) Holds(value Value, present bool) bool {
	if !present {
		return false
	}
	s, ok := value.(string)
	return ok && s == p.want
}

// Equals matches a scalar answer by exact value. Used for single_choice
// triggers such as "ring inserted == no".
func Equals(want string) Predicate {
	return equalsPredicate{want: want}
}

type includesPredicate struct {
	want string
}

func (p includesPredicate) Holds(value Value, present bool) bool {
	if !present {
		return false
	}
	switch vs := value.(type) {
	case []string:
		for _, v := range vs {
			if v == p.want {
				return true
			}
		}
	case []any:
		for _, v := range vs {
			if s, ok := v.(string); ok && s == p.want {
				return true
			}
		}
	}
	return false
}

// Includes matches a multi_choice answer containing the given value. An
// explicitly empty selection is present but never matches, which is distinct
// from no selection having been recorded yet. This is deliberately the only
// predicate beyond equality; new branching behaviour should extend the
// predicate set here instead of special-casing resolution.
func Includes(want string) Predicate {
	return includesPredicate{want: want}
}

// Rule declares one skip-logic branch: the dependent question is shown only
// while the trigger's answer satisfies the predicate. Rules are authored
// against question text because questionnaires are provisioned without stable
// cross-environment ids; NewDefinition resolves them to ids once at load.
type Rule struct {
	TriggerText   string
	DependentText string
	Predicate     Predicate
}

// DefaultRules is the branching table for the contraceptive ring diary
// questionnaire shipped as the demo seed.
func DefaultRules() []Rule {
	return []Rule{
		{
			TriggerText:   "Did you insert the vaginal ring today?",
			DependentText: "Why was the ring not inserted?",
			Predicate:     Equals("no"),
		},
		{
			TriggerText:   "Did you remove the ring at any point today?",
			DependentText: "For how long was the ring out (minutes)?",
			Predicate:     Equals("yes"),
		},
		{
			TriggerText:   "Which symptoms did you experience today?",
			DependentText: "Please describe the other symptoms",
			Predicate:     Includes("other"),
		},
	}
}
