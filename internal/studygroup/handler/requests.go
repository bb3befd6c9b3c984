package handler

import (
	"strings"

	"studygroups/internal/studygroup/models"
	dErrors "studygroups/pkg/domain-errors"
)

// CreateStudyGroupRequest is the HTTP request body for POST /studygroups.
// Subject accepts a name ("Math") or its integer value.
type CreateStudyGroupRequest struct {
	UserID  int64          `json:"user_id"`
	Name    string         `json:"name"`
	Subject models.Subject `json:"subject"`
}

// Validate checks name then subject, in the same order as the domain constructor.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateStudyGroupRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return r.ToCreationRequest().Validate()
}

func (r *CreateStudyGroupRequest) ToCreationRequest() models.CreationRequest {
	return models.CreationRequest{
		UserID:  models.UserID(r.UserID),
		Name:    r.Name,
		Subject: r.Subject,
	}
}

// MembershipRequest is the body for join and leave.
type MembershipRequest struct {
	UserID int64 `json:"user_id"`
}

func (r *MembershipRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.UserID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	return nil
}

// CreateUserRequest is the HTTP request body for POST /users.
type CreateUserRequest struct {
	Name string `json:"name"`
}

func (r *CreateUserRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "user name is required")
	}
	return nil
}
