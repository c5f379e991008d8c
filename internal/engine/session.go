package engine

// RequirementMet is the validation gate consulted before forward navigation.
// Optional questions always pass. Required questions need a present,
// non-empty value; numeric zero and false are valid answers.
func RequirementMet(q Question, v Value, present bool) bool {
	if !q.Required {
		return true
	}
	if !present {
		return false
	}
	return !valueEmpty(v)
}

// AdvanceResult is what a forward-navigation attempt produced.
type AdvanceResult int

const (
	// AdvanceBlocked means the current question's requirement is unmet; the
	// cursor did not move.
	AdvanceBlocked AdvanceResult = iota
	// AdvanceMoved means the cursor moved to the next visible question.
	AdvanceMoved
	// AdvanceSubmit means the cursor was at the last visible question and the
	// session is ready for submission.
	AdvanceSubmit
)

// Progress summarises how far through the visible sequence the participant
// is. Ratio is clamped to [0,1] and 0 for an empty sequence.
type Progress struct {
	Answered  int     `json:"answered"`
	Remaining int     `json:"remaining"`
	Ratio     float64 `json:"ratio"`
}

// Session is the navigation state for one in-progress fill: the answer store,
// the visible sequence derived from it, and a cursor into that sequence. The
// cursor is recomputed and clamped on every answer edit, so it always points
// at a currently visible question while the sequence is non-empty.
type Session struct {
	def     *Definition
	taskID  uint
	answers *AnswerStore
	visible []QuestionID
	cursor  int
}

// NewSession starts an empty fill session for the task driving it.
func NewSession(def *Definition, taskID uint) *Session {
	s := &Session{
		def:     def,
		taskID:  taskID,
		answers: NewAnswerStore(),
	}
	s.visible = def.Visible(s.answers)
	return s
}

func (s *Session) TaskID() uint {
	return s.taskID
}

func (s *Session) Definition() *Definition {
	return s.def
}

func (s *Session) Answers() *AnswerStore {
	return s.answers
}

// SetAnswer records an answer and recomputes visibility. Toggling an answer
// can un-reveal a later conditional question, shrinking the sequence beneath
// the cursor; the clamp keeps the cursor in range instead of faulting.
func (s *Session) SetAnswer(id QuestionID, v Value) {
	s.answers.Set(id, v)
	s.recompute()
}

// ClearAnswer removes an answer, returning the question to unanswered.
func (s *Session) ClearAnswer(id QuestionID) {
	s.answers.Clear(id)
	s.recompute()
}

func (s *Session) recompute() {
	s.visible = s.def.Visible(s.answers)
	if s.cursor >= len(s.visible) {
		s.cursor = len(s.visible) - 1
		if s.cursor < 0 {
			s.cursor = 0
		}
	}
}

// VisibleIDs returns a copy of the current visible sequence.
func (s *Session) VisibleIDs() []QuestionID {
	out := make([]QuestionID, len(s.visible))
	copy(out, s.visible)
	return out
}

func (s *Session) Cursor() int {
	return s.cursor
}

// Current returns the question under the cursor, or false when the visible
// sequence is empty.
func (s *Session) Current() (Question, bool) {
	if len(s.visible) == 0 {
		return Question{}, false
	}
	return s.def.Question(s.visible[s.cursor])
}

// Advance moves forward one visible question after the validation gate
// passes. At the last index it does not move; it reports that the session is
// ready to submit.
func (s *Session) Advance() AdvanceResult {
	q, ok := s.Current()
	if !ok {
		return AdvanceSubmit
	}
	v, present := s.answers.Get(q.ID)
	if !RequirementMet(q, v, present) {
		return AdvanceBlocked
	}
	if s.cursor >= len(s.visible)-1 {
		return AdvanceSubmit
	}
	s.cursor++
	return AdvanceMoved
}

// Retreat moves back one question. Going back is always allowed and never
// re-validates forward progress.
func (s *Session) Retreat() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// Progress reports position within the visible sequence.
func (s *Session) Progress() Progress {
	total := len(s.visible)
	if total == 0 {
		return Progress{}
	}
	answered := s.cursor + 1
	remaining := total - answered
	if remaining < 0 {
		remaining = 0
	}
	ratio := float64(answered) / float64(total)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return Progress{Answered: answered, Remaining: remaining, Ratio: ratio}
}

// Reset discards all answers and rewinds the cursor, used after a successful
// submission or when the participant abandons the fill.
func (s *Session) Reset() {
	s.answers.Reset()
	s.cursor = 0
	s.visible = s.def.Visible(s.answers)
}
