package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"studygroups/internal/studygroup/models"
	"studygroups/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	base  time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) createUser(name string) models.User {
	u := &models.User{Name: name}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	return *u
}

func (s *InMemoryStoreSuite) createGroup(name string, subject models.Subject, offset time.Duration, users ...models.User) *models.StudyGroup {
	g, err := models.NewStudyGroup(0, name, subject, s.base.Add(offset), users)
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateStudyGroup(s.ctx, g))
	return g
}

func (s *InMemoryStoreSuite) TestCreationAndLookups() {
	s.Run("assigns sequential ids", func() {
		a := s.createGroup("First Group", models.SubjectMath, 0)
		b := s.createGroup("Second Group", models.SubjectPhysics, 0)
		s.Equal(a.ID+1, b.ID)
	})

	s.Run("finds group with members in join order", func() {
		maria := s.createUser("Maria")
		joao := s.createUser("João")
		g := s.createGroup("Math Study Group", models.SubjectMath, 0, maria, joao)

		found, err := s.store.FindStudyGroupByID(s.ctx, g.ID)
		s.Require().NoError(err)
		s.Equal("Math Study Group", found.Name())
		s.Require().Len(found.Users, 2)
		s.Equal("Maria", found.Users[0].Name)
		s.Equal("João", found.Users[1].Name)
		s.Equal(g.ID, found.Users[0].StudyGroupID)
	})

	s.Run("returns ErrNotFound for unknown ids", func() {
		_, err := s.store.FindStudyGroupByID(s.ctx, 999)
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindUserByID(s.ctx, 999)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects members that were never stored", func() {
		g, err := models.NewStudyGroup(0, "Ghost Group", models.SubjectMath, s.base, []models.User{{ID: 404, Name: "Ghost"}})
		s.Require().NoError(err)
		s.ErrorIs(s.store.CreateStudyGroup(s.ctx, g), sentinel.ErrNotFound)
	})

	s.Run("rejects explicit duplicate ids", func() {
		u := s.createUser("Paula")
		s.ErrorIs(s.store.CreateUser(s.ctx, &models.User{ID: u.ID, Name: "Other"}), sentinel.ErrConflict)
	})
}

// TestCopies verifies callers cannot reach into stored state.
func (s *InMemoryStoreSuite) TestCopies() {
	maria := s.createUser("Maria")
	g := s.createGroup("Math Study Group", models.SubjectMath, 0, maria)

	found, err := s.store.FindStudyGroupByID(s.ctx, g.ID)
	s.Require().NoError(err)
	found.AddUser(models.User{ID: 77, Name: "Intruder"})

	again, err := s.store.FindStudyGroupByID(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Len(again.Users, 1)
}

func (s *InMemoryStoreSuite) TestListOrder() {
	late := s.createGroup("Late Group", models.SubjectMath, time.Hour)
	early := s.createGroup("Early Group", models.SubjectMath, 0)

	groups, err := s.store.ListStudyGroups(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal(late.ID, groups[0].ID)
	s.Equal(early.ID, groups[1].ID)
}

func (s *InMemoryStoreSuite) TestFindStudyGroupsByMemberPrefix() {
	maria := s.createUser("Maria")
	joao := s.createUser("João")
	mario := s.createUser("Mario")
	lower := s.createUser("marta")

	newer := s.createGroup("Newer Group", models.SubjectPhysics, 2*time.Hour, mario)
	s.createGroup("No M Group", models.SubjectMath, 0, joao)
	older := s.createGroup("Older Group", models.SubjectMath, time.Hour, joao, maria, mario)
	s.createGroup("Lowercase Group", models.SubjectChemistry, 0, lower)

	groups, err := s.store.FindStudyGroupsByMemberPrefix(s.ctx, "M")
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal(older.ID, groups[0].ID)
	s.Equal(newer.ID, groups[1].ID)
	s.Len(groups[0].Users, 3, "matching groups carry all their members")
}

func (s *InMemoryStoreSuite) TestExecute() {
	maria := s.createUser("Maria")
	joao := s.createUser("João")
	g := s.createGroup("Math Study Group", models.SubjectMath, 0, maria)

	s.Run("mutation is persisted and back-reference set", func() {
		updated, err := s.store.Execute(s.ctx, g.ID,
			func(*models.StudyGroup) error { return nil },
			func(g *models.StudyGroup) { g.AddUser(joao) },
		)
		s.Require().NoError(err)
		s.Len(updated.Users, 2)

		u, err := s.store.FindUserByID(s.ctx, joao.ID)
		s.Require().NoError(err)
		s.Equal(g.ID, u.StudyGroupID)
	})

	s.Run("validation error aborts without writing", func() {
		errStop := errors.New("stop")
		_, err := s.store.Execute(s.ctx, g.ID,
			func(*models.StudyGroup) error { return errStop },
			func(g *models.StudyGroup) { g.Users = nil },
		)
		s.ErrorIs(err, errStop)

		found, err := s.store.FindStudyGroupByID(s.ctx, g.ID)
		s.Require().NoError(err)
		s.Len(found.Users, 2)
	})

	s.Run("removal clears back-reference", func() {
		_, err := s.store.Execute(s.ctx, g.ID,
			func(*models.StudyGroup) error { return nil },
			func(g *models.StudyGroup) {
				m, _ := g.Member(joao.ID)
				g.RemoveUser(m)
			},
		)
		s.Require().NoError(err)

		u, err := s.store.FindUserByID(s.ctx, joao.ID)
		s.Require().NoError(err)
		s.Zero(u.StudyGroupID)
	})

	s.Run("unknown group", func() {
		_, err := s.store.Execute(s.ctx, 999,
			func(*models.StudyGroup) error { return nil },
			func(*models.StudyGroup) {},
		)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestIsEmpty() {
	empty, err := s.store.IsEmpty(s.ctx)
	s.Require().NoError(err)
	s.True(empty)

	s.createGroup("Math Study Group", models.SubjectMath, 0)
	empty, err = s.store.IsEmpty(s.ctx)
	s.Require().NoError(err)
	s.False(empty)
}
