package repository

import (
	"context"
	"errors"

	"studygroups/internal/studygroup/models"
	dErrors "studygroups/pkg/domain-errors"
)

const alreadyHasGroupMessage = "user already has a study group for this subject"

var errNotMember = errors.New("user is not a member")

// CreateStudyGroup validates req, rejects a second group for the same user and
// subject, and persists a new group stamped with the current time.
func (r *Repository) CreateStudyGroup(ctx context.Context, req models.CreationRequest) (id models.StudyGroupID, err error) {
	ctx, span := r.startSpan(ctx, "CreateStudyGroup")
	defer func() { finishSpan(span, err) }()

	if err := req.Validate(); err != nil {
		return 0, err
	}

	exists, err := r.UserAlreadyHasGroupForSubject(ctx, req.UserID, req.Subject)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, dErrors.New(dErrors.CodeConflict, alreadyHasGroupMessage)
	}

	group, err := models.NewStudyGroup(0, req.Name, req.Subject, r.now(ctx), nil)
	if err != nil {
		return 0, err
	}

	if r.creatorMembership {
		creator, err := r.store.FindUserByID(ctx, req.UserID)
		switch {
		case err == nil:
			group.AddUser(*creator)
		case !isNotFound(err):
			return 0, wrapStoreErr(err)
		}
	}

	if err := r.store.CreateStudyGroup(ctx, group); err != nil {
		return 0, wrapStoreErr(err)
	}

	r.log(ctx, "study group created",
		"study_group_id", group.ID,
		"user_id", req.UserID,
		"subject", group.Subject().String(),
		"members", len(group.Users),
	)
	if r.metrics != nil {
		r.metrics.IncrementStudyGroupsCreated()
	}
	return group.ID, nil
}

// CreateUser persists a new user and returns it with its assigned id.
func (r *Repository) CreateUser(ctx context.Context, name string) (user *models.User, err error) {
	ctx, span := r.startSpan(ctx, "CreateUser")
	defer func() { finishSpan(span, err) }()

	user, err = models.NewUser(name)
	if err != nil {
		return nil, err
	}
	if err := r.store.CreateUser(ctx, user); err != nil {
		return nil, wrapStoreErr(err)
	}

	r.log(ctx, "user created", "user_id", user.ID)
	if r.metrics != nil {
		r.metrics.IncrementUsersCreated()
	}
	return user, nil
}

// JoinStudyGroup appends the user to the group's members. A missing group or
// user leaves everything unchanged and is not an error.
func (r *Repository) JoinStudyGroup(ctx context.Context, studyGroupID models.StudyGroupID, userID models.UserID) (err error) {
	ctx, span := r.startSpan(ctx, "JoinStudyGroup")
	defer func() { finishSpan(span, err) }()

	user, err := r.store.FindUserByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return wrapStoreErr(err)
	}

	_, err = r.store.Execute(ctx, studyGroupID,
		func(*models.StudyGroup) error { return nil },
		func(g *models.StudyGroup) {
			g.AddUser(*user)
		},
	)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return wrapStoreErr(err)
	}

	r.log(ctx, "user joined study group", "study_group_id", studyGroupID, "user_id", userID)
	if r.metrics != nil {
		r.metrics.IncrementJoins()
	}
	return nil
}

// LeaveStudyGroup removes the user from the group's members. A missing group,
// missing user or non-member is a no-op.
func (r *Repository) LeaveStudyGroup(ctx context.Context, studyGroupID models.StudyGroupID, userID models.UserID) (err error) {
	ctx, span := r.startSpan(ctx, "LeaveStudyGroup")
	defer func() { finishSpan(span, err) }()

	if _, err := r.store.FindUserByID(ctx, userID); err != nil {
		if isNotFound(err) {
			return nil
		}
		return wrapStoreErr(err)
	}

	_, err = r.store.Execute(ctx, studyGroupID,
		func(g *models.StudyGroup) error {
			if !g.HasMember(userID) {
				return errNotMember
			}
			return nil
		},
		func(g *models.StudyGroup) {
			member, _ := g.Member(userID)
			g.RemoveUser(member)
		},
	)
	if err != nil {
		if isNotFound(err) || errors.Is(err, errNotMember) {
			return nil
		}
		return wrapStoreErr(err)
	}

	r.log(ctx, "user left study group", "study_group_id", studyGroupID, "user_id", userID)
	if r.metrics != nil {
		r.metrics.IncrementLeaves()
	}
	return nil
}
