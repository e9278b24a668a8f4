package domain

import "time"

// Run is one generate action: every division attempted with its outcome.
type Run struct {
	ID        string
	Provider  string
	Model     string
	CreatedAt time.Time
	Results   []DivisionResult
}

// DivisionResult is the outcome for a single division. Error is set when
// the model call failed; HTML always holds something displayable.
type DivisionResult struct {
	ID         string
	RunID      string
	Position   int
	Division   string
	Prompt     string
	Raw        string
	HTML       string
	Error      string
	Violations []Violation
	LatencyMs  int64
}

// Failed reports whether the model call for this division failed.
func (r DivisionResult) Failed() bool {
	return r.Error != ""
}

// Succeeded counts divisions that produced model output.
func (r *Run) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if !res.Failed() {
			n++
		}
	}
	return n
}

type ViolationKind string

const (
	ViolationBreakSlot       ViolationKind = "break_slot"
	ViolationTeacherClash    ViolationKind = "teacher_clash"
	ViolationTeacherOverload ViolationKind = "teacher_overload"
	ViolationMissingCell     ViolationKind = "missing_cell"
	ViolationUnknownTeacher  ViolationKind = "unknown_teacher"
)

// Violation is one rule the model output breaks. Violations are reported,
// never corrected.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Division string        `json:"division"`
	Day      string        `json:"day,omitempty"`
	Slot     string        `json:"slot,omitempty"`
	Teacher  string        `json:"teacher,omitempty"`
	Message  string        `json:"message"`
}
