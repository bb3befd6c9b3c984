package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Subject is the closed set of topics a study group can be about.
type Subject int

const (
	SubjectMath Subject = iota
	SubjectChemistry
	SubjectPhysics
)

var subjectNames = [...]string{
	SubjectMath:      "Math",
	SubjectChemistry: "Chemistry",
	SubjectPhysics:   "Physics",
}

// Subjects lists every valid subject in declaration order.
func Subjects() []Subject {
	return []Subject{SubjectMath, SubjectChemistry, SubjectPhysics}
}

// IsValid reports whether s is one of the declared subjects.
func (s Subject) IsValid() bool {
	return s >= SubjectMath && s <= SubjectPhysics
}

func (s Subject) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Subject(%d)", int(s))
	}
	return subjectNames[s]
}

// ParseSubject matches a subject name case-insensitively.
func ParseSubject(name string) (Subject, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Subjects() {
		if strings.EqualFold(s.String(), name) {
			return s, true
		}
	}
	return 0, false
}

func (s Subject) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return json.Marshal(int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a subject name or its integer value. Undefined integers
// are kept as-is so validation can report them.
func (s *Subject) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Subject(n)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("subject must be a name or an integer: %w", err)
	}
	parsed, ok := ParseSubject(name)
	if !ok {
		*s = Subject(-1)
		return nil
	}
	*s = parsed
	return nil
}
