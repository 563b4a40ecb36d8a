package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fieldsync/internal/pkg/errs"
)

// JobIDPrefix is the literal prefix of every job identifier.
const JobIDPrefix = "JOB-"

const jobIDDigits = 6

var jobIDPattern = regexp.MustCompile(`^JOB-(\d{6,})$`)

// ErrJobIDIsNotConstructed indicates a zero-value JobID.
var ErrJobIDIsNotConstructed = errs.NewValueIsRequiredError("JobID must be created via ParseJobID or NewJobID")

// JobID is the immutable identifier of a job record, formatted as "JOB-" followed by
// a zero-padded sequence number of at least six digits (e.g. "JOB-000042").
//
// The identifier is assigned once at intake and never reused. It is embedded as the
// first token of every calendar event title created for the job, which is what makes
// event lookup idempotent.
//
// The zero value is invalid; use ParseJobID, NewJobID or NextJobID.
type JobID struct {
	value    string
	sequence int
}

// NewJobID builds the identifier for a sequence number.
//
// Parameters:
//   - sequence: the numeric part, starting at 1
//
// Returns:
//   - JobID: the zero-padded identifier
//   - error: *errs.ValueIsOutOfRangeError when sequence is below 1
//
// Example:
//
//	id, _ := kernel.NewJobID(42)
//	fmt.Println(id) // JOB-000042
func NewJobID(sequence int) (JobID, error) {
	if sequence < 1 {
		return JobID{}, errs.NewValueIsOutOfRangeError("job sequence", sequence, 1, "unbounded")
	}

	return JobID{
		value:    fmt.Sprintf("%s%0*d", JobIDPrefix, jobIDDigits, sequence),
		sequence: sequence,
	}, nil
}

// ParseJobID parses a well-formed identifier. Surrounding whitespace is ignored.
// Anything that does not match "JOB-" plus six or more digits is rejected.
//
// Returns:
//   - JobID: the parsed identifier
//   - error: *errs.ValueIsInvalidError for a malformed value
func ParseJobID(raw string) (JobID, error) {
	s := strings.TrimSpace(raw)
	m := jobIDPattern.FindStringSubmatch(s)
	if m == nil {
		return JobID{}, errs.NewValueIsInvalidErrorWithCause("job_id", fmt.Errorf("%q is not a JOB-###### identifier", raw))
	}

	seq, err := strconv.Atoi(m[1])
	if err != nil || seq < 1 {
		return JobID{}, errs.NewValueIsInvalidErrorWithCause("job_id", fmt.Errorf("%q has no valid sequence", raw))
	}

	return JobID{value: s, sequence: seq}, nil
}

// NextJobID returns the identifier that follows the highest well-formed identifier
// in existing. Malformed and empty entries are ignored; with no well-formed entry
// the first identifier, JOB-000001, is returned.
//
// Example:
//
//	next := kernel.NextJobID([]string{"JOB-000001", "JOB-000002", "/", ""})
//	fmt.Println(next) // JOB-000003
func NextJobID(existing []string) JobID {
	highest := 0
	for _, raw := range existing {
		id, err := ParseJobID(raw)
		if err != nil {
			continue
		}
		if id.sequence > highest {
			highest = id.sequence
		}
	}

	next, _ := NewJobID(highest + 1)
	return next
}

// Validate reports whether the identifier was properly constructed.
func (id JobID) Validate() error {
	if id.value == "" {
		return ErrJobIDIsNotConstructed
	}
	return nil
}

// String returns the canonical "JOB-######" form.
func (id JobID) String() string {
	return id.value
}

// Sequence returns the numeric suffix.
func (id JobID) Sequence() int {
	return id.sequence
}

// IsEqual compares two identifiers by value.
func (id JobID) IsEqual(other JobID) bool {
	return id.value == other.value
}
