// Package store holds data shared by the Store backends in its subpackages.
package store

import (
	"context"
	"fmt"
	"time"

	"studygroups/internal/studygroup/models"
)

// Seeder is satisfied by every backend.
type Seeder interface {
	IsEmpty(ctx context.Context) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	CreateStudyGroup(ctx context.Context, group *models.StudyGroup) error
}

// BootstrapGroupID is the id the bootstrap group is stored under.
const BootstrapGroupID models.StudyGroupID = 1

const BootstrapGroupName = "Grupo de Estudo de Matemática"

// BootstrapMembers are created and added, in order, to the bootstrap group.
var BootstrapMembers = []string{"Maria", "João"}

// SeedBootstrapStudyGroup creates the bootstrap Math group and its members when
// the store holds no study groups. It returns nil without writing otherwise.
func SeedBootstrapStudyGroup(ctx context.Context, s Seeder, now time.Time) (*models.StudyGroup, error) {
	empty, err := s.IsEmpty(ctx)
	if err != nil {
		return nil, fmt.Errorf("check store contents: %w", err)
	}
	if !empty {
		return nil, nil
	}

	users := make([]models.User, 0, len(BootstrapMembers))
	for _, name := range BootstrapMembers {
		u := &models.User{Name: name}
		if err := s.CreateUser(ctx, u); err != nil {
			return nil, fmt.Errorf("seed user %q: %w", name, err)
		}
		users = append(users, *u)
	}

	group, err := models.NewStudyGroup(BootstrapGroupID, BootstrapGroupName, models.SubjectMath, now, users)
	if err != nil {
		return nil, err
	}
	if err := s.CreateStudyGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("seed study group: %w", err)
	}
	return group, nil
}
