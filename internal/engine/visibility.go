package engine

// Visible computes the ordered sequence of currently visible question ids: a
// pure function of the definition and the answer snapshot, so recomputation
// after every edit is idempotent. A question with no dependency is always
// included; a dependent question is included only while its trigger's current
// answer satisfies the rule predicate. An unanswered or missing trigger hides
// the dependent (fail closed).
func (d *Definition) Visible(answers *AnswerStore) []QuestionID {
	visible := make([]QuestionID, 0, len(d.questions))
	for _, q := range d.questions {
		dep, conditional := d.deps[q.ID]
		if !conditional {
			visible = append(visible, q.ID)
			continue
		}
		if dep.orphaned {
			continue
		}
		v, ok := answers.Get(dep.trigger)
		if dep.pred.Holds(v, ok) {
			visible = append(visible, q.ID)
		}
	}
	return visible
}
