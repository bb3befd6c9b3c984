package handler

import (
	"time"

	"studygroups/internal/studygroup/models"
)

// StudyGroupResponse is the JSON shape of a study group.
type StudyGroupResponse struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Subject    models.Subject `json:"subject"`
	CreateDate time.Time      `json:"create_date"`
	Users      []UserResponse `json:"users"`
}

type UserResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	StudyGroupID int64  `json:"study_group_id,omitempty"`
}

func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:           int64(u.ID),
		Name:         u.Name,
		StudyGroupID: int64(u.StudyGroupID),
	}
}

func FromStudyGroup(g *models.StudyGroup) StudyGroupResponse {
	users := make([]UserResponse, len(g.Users))
	for i := range g.Users {
		users[i] = FromUser(&g.Users[i])
	}
	return StudyGroupResponse{
		ID:         int64(g.ID),
		Name:       g.Name(),
		Subject:    g.Subject(),
		CreateDate: g.CreateDate(),
		Users:      users,
	}
}

// FromStudyGroups converts groups, keeping order. A nil input yields an empty
// list so the body is always a JSON array.
func FromStudyGroups(groups []*models.StudyGroup) []StudyGroupResponse {
	out := make([]StudyGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = FromStudyGroup(g)
	}
	return out
}
