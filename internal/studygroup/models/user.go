package models

import (
	"strings"

	dErrors "studygroups/pkg/domain-errors"
)

// UserID identifies a user. Zero means "not yet persisted".
type UserID int64

// User is a person who can belong to study groups.
//
// StudyGroupID is a denormalised pointer to the group the user joined most
// recently (zero when none). Membership itself is the group's Users list.
type User struct {
	ID           UserID       `json:"id"`
	Name         string       `json:"name"`
	StudyGroupID StudyGroupID `json:"study_group_id,omitempty"`
}

// NewUser builds an unpersisted user.
func NewUser(name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "user name is required")
	}
	return &User{Name: name}, nil
}
