// Package memory is the in-process Store backend. All reads and writes go
// through copies, so callers never share state with the store.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"studygroups/internal/studygroup/models"
	"studygroups/pkg/platform/sentinel"
)

type groupRecord struct {
	id         models.StudyGroupID
	name       string
	subject    models.Subject
	createDate time.Time
	members    []models.UserID
}

type InMemory struct {
	mu        sync.RWMutex
	groups    map[models.StudyGroupID]*groupRecord
	users     map[models.UserID]models.User
	nextGroup models.StudyGroupID
	nextUser  models.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		groups: make(map[models.StudyGroupID]*groupRecord),
		users:  make(map[models.UserID]models.User),
	}
}

func (s *InMemory) CreateStudyGroup(_ context.Context, group *models.StudyGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := group.MemberIDs()
	for _, id := range members {
		if _, ok := s.users[id]; !ok {
			return fmt.Errorf("member user %d: %w", id, sentinel.ErrNotFound)
		}
	}

	if group.ID == 0 {
		s.nextGroup++
		group.ID = s.nextGroup
	} else if _, exists := s.groups[group.ID]; exists {
		return fmt.Errorf("study group %d: %w", group.ID, sentinel.ErrConflict)
	} else if group.ID > s.nextGroup {
		s.nextGroup = group.ID
	}

	s.groups[group.ID] = &groupRecord{
		id:         group.ID,
		name:       group.Name(),
		subject:    group.Subject(),
		createDate: group.CreateDate(),
		members:    members,
	}
	s.applyBackReferences(group.ID, nil, members)
	return nil
}

func (s *InMemory) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		s.nextUser++
		user.ID = s.nextUser
	} else if _, exists := s.users[user.ID]; exists {
		return fmt.Errorf("user %d: %w", user.ID, sentinel.ErrConflict)
	} else if user.ID > s.nextUser {
		s.nextUser = user.ID
	}
	s.users[user.ID] = *user
	return nil
}

func (s *InMemory) FindStudyGroupByID(_ context.Context, id models.StudyGroupID) (*models.StudyGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.groups[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.hydrate(rec), nil
}

func (s *InMemory) FindUserByID(_ context.Context, id models.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &u, nil
}

// ListStudyGroups returns all groups ordered by id, which is insertion order.
func (s *InMemory) ListStudyGroups(_ context.Context) ([]*models.StudyGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked(), nil
}

func (s *InMemory) FindStudyGroupsByMemberPrefix(_ context.Context, prefix string) ([]*models.StudyGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.StudyGroup
	for _, rec := range s.sortedRecords() {
		if s.anyMemberHasPrefix(rec, prefix) {
			out = append(out, s.hydrate(rec))
		}
	}
	slices.SortStableFunc(out, func(a, b *models.StudyGroup) int {
		return a.CreateDate().Compare(b.CreateDate())
	})
	return out, nil
}

// Execute runs validate and mutate under the write lock and saves the group's
// membership. Back-references on users are updated to match.
func (s *InMemory) Execute(_ context.Context, id models.StudyGroupID, validate func(*models.StudyGroup) error, mutate func(*models.StudyGroup)) (*models.StudyGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.groups[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	group := s.hydrate(rec)
	if err := validate(group); err != nil {
		return nil, err
	}
	mutate(group)

	after := group.MemberIDs()
	for _, uid := range after {
		if _, ok := s.users[uid]; !ok {
			return nil, fmt.Errorf("member user %d: %w", uid, sentinel.ErrNotFound)
		}
	}
	before := rec.members
	rec.members = after
	s.applyBackReferences(id, before, after)
	return s.hydrate(rec), nil
}

// IsEmpty reports whether no study group has been stored yet.
func (s *InMemory) IsEmpty(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groups) == 0, nil
}

func (s *InMemory) applyBackReferences(groupID models.StudyGroupID, before, after []models.UserID) {
	joined, left := models.DiffMembers(before, after)
	for _, uid := range joined {
		u := s.users[uid]
		u.StudyGroupID = groupID
		s.users[uid] = u
	}
	for _, uid := range left {
		u, ok := s.users[uid]
		if ok && u.StudyGroupID == groupID {
			u.StudyGroupID = 0
			s.users[uid] = u
		}
	}
}

func (s *InMemory) listLocked() []*models.StudyGroup {
	records := s.sortedRecords()
	out := make([]*models.StudyGroup, 0, len(records))
	for _, rec := range records {
		out = append(out, s.hydrate(rec))
	}
	return out
}

func (s *InMemory) sortedRecords() []*groupRecord {
	records := make([]*groupRecord, 0, len(s.groups))
	for _, rec := range s.groups {
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b *groupRecord) int {
		return cmp.Compare(a.id, b.id)
	})
	return records
}

func (s *InMemory) anyMemberHasPrefix(rec *groupRecord, prefix string) bool {
	for _, uid := range rec.members {
		if strings.HasPrefix(s.users[uid].Name, prefix) {
			return true
		}
	}
	return false
}

func (s *InMemory) hydrate(rec *groupRecord) *models.StudyGroup {
	users := make([]models.User, 0, len(rec.members))
	for _, uid := range rec.members {
		users = append(users, s.users[uid])
	}
	return models.RestoreStudyGroup(rec.id, rec.name, rec.subject, rec.createDate, users)
}
