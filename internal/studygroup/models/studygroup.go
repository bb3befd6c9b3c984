package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	dErrors "studygroups/pkg/domain-errors"
)

const (
	MinNameLength = 5
	MaxNameLength = 30
)

var (
	nameLengthMessage = fmt.Sprintf("name must be between %d and %d characters", MinNameLength, MaxNameLength)
	invalidSubject    = "invalid subject"
)

// StudyGroupID identifies a study group. Zero means "assign on create".
type StudyGroupID int64

// StudyGroup is the aggregate root: a named group about one subject and its
// ordered member list.
//
// Invariants:
//   - Name is non-blank and 5..30 characters long
//   - Subject is one of the declared subjects
//   - Name, Subject and CreateDate never change after construction
//   - Users keeps append order; duplicates are not rejected here
type StudyGroup struct {
	ID         StudyGroupID
	name       string
	subject    Subject
	createDate time.Time
	Users      []User
}

// NewStudyGroup validates its inputs and returns a group. A nil users slice
// becomes an empty membership list.
func NewStudyGroup(id StudyGroupID, name string, subject Subject, createDate time.Time, users []User) (*StudyGroup, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateSubject(subject); err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return &StudyGroup{
		ID:         id,
		name:       name,
		subject:    subject,
		createDate: createDate,
		Users:      users,
	}, nil
}

// RestoreStudyGroup rebuilds a persisted group without re-validating. Stores use
// it when loading rows written by NewStudyGroup.
func RestoreStudyGroup(id StudyGroupID, name string, subject Subject, createDate time.Time, users []User) *StudyGroup {
	if users == nil {
		users = []User{}
	}
	return &StudyGroup{ID: id, name: name, subject: subject, createDate: createDate, Users: users}
}

func (g *StudyGroup) Name() string          { return g.name }
func (g *StudyGroup) Subject() Subject      { return g.subject }
func (g *StudyGroup) CreateDate() time.Time { return g.createDate }

// AddUser appends u to the member list.
func (g *StudyGroup) AddUser(u User) {
	g.Users = append(g.Users, u)
}

// RemoveUser removes the first member equal to u. Absent users are ignored.
func (g *StudyGroup) RemoveUser(u User) {
	for i := range g.Users {
		if g.Users[i] == u {
			g.Users = append(g.Users[:i], g.Users[i+1:]...)
			return
		}
	}
}

// Member returns the member with the given id.
func (g *StudyGroup) Member(userID UserID) (User, bool) {
	for _, u := range g.Users {
		if u.ID == userID {
			return u, true
		}
	}
	return User{}, false
}

func (g *StudyGroup) HasMember(userID UserID) bool {
	_, ok := g.Member(userID)
	return ok
}

// HasMemberNamePrefix reports whether any member name starts with prefix.
// The comparison is ordinal and case-sensitive.
func (g *StudyGroup) HasMemberNamePrefix(prefix string) bool {
	for _, u := range g.Users {
		if strings.HasPrefix(u.Name, prefix) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with g.
func (g *StudyGroup) Clone() *StudyGroup {
	c := *g
	c.Users = append([]User{}, g.Users...)
	return &c
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if strings.TrimSpace(name) == "" || n < MinNameLength || n > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, nameLengthMessage)
	}
	return nil
}

func validateSubject(subject Subject) error {
	if !subject.IsValid() {
		return dErrors.New(dErrors.CodeValidation, invalidSubject)
	}
	return nil
}

// MemberIDs returns member ids in list order.
func (g *StudyGroup) MemberIDs() []UserID {
	ids := make([]UserID, len(g.Users))
	for i, u := range g.Users {
		ids[i] = u.ID
	}
	return ids
}

// DiffMembers compares two member id lists. Joined holds ids whose occurrence
// count grew; left holds ids no longer present at all.
func DiffMembers(before, after []UserID) (joined, left []UserID) {
	counts := make(map[UserID]int, len(before))
	for _, id := range before {
		counts[id]++
	}
	for _, id := range after {
		counts[id]--
	}
	present := make(map[UserID]bool, len(after))
	for _, id := range after {
		present[id] = true
	}
	seen := make(map[UserID]bool)
	for _, id := range after {
		if counts[id] < 0 && !seen[id] {
			joined = append(joined, id)
			seen[id] = true
		}
	}
	for _, id := range before {
		if !present[id] && !seen[id] {
			left = append(left, id)
			seen[id] = true
		}
	}
	return joined, left
}
