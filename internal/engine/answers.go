package engine

import (
	"strconv"
)

// Value is a recorded answer: a string, float64 or bool for scalar question
// types, or a []string / []any for multi_choice. Absence of a key in the
// store means "unanswered", which is distinct from an explicit empty value.
type Value = any

// AnswerStore holds the participant's answers for one in-progress fill
// session. Edits are last-write-wins per question id.
type AnswerStore struct {
	values map[QuestionID]Value
}

func NewAnswerStore() *AnswerStore {
	return &AnswerStore{values: make(map[QuestionID]Value)}
}

func (s *AnswerStore) Set(id QuestionID, v Value) {
	s.values[id] = v
}

// Clear removes the answer entirely, returning the question to the
// unanswered state.
func (s *AnswerStore) Clear(id QuestionID) {
	delete(s.values, id)
}

func (s *AnswerStore) Get(id QuestionID) (Value, bool) {
	v, ok := s.values[id]
	return v, ok
}

func (s *AnswerStore) Len() int {
	return len(s.values)
}

// Reset discards all recorded answers, used after a successful submission.
func (s *AnswerStore) Reset() {
	s.values = make(map[QuestionID]Value)
}

// Payload renders the store as the submit wire shape: question ids as
// decimal string keys.
func (s *AnswerStore) Payload() map[string]Value {
	out := make(map[string]Value, len(s.values))
	for id, v := range s.values {
		out[strconv.FormatUint(uint64(id), 10)] = v
	}
	return out
}

// valueEmpty reports whether an explicitly recorded value counts as empty
// for required-ness: nil, the empty string, or an empty selection. Numeric
// zero and false are real answers.
func valueEmpty(v Value) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}
