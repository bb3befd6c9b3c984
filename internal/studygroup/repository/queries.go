package repository

import (
	"context"
	"slices"
	"strings"
	"time"

	"studygroups/internal/studygroup/models"
)

// GetStudyGroups returns every persisted group in insertion order.
func (r *Repository) GetStudyGroups(ctx context.Context) (groups []*models.StudyGroup, err error) {
	ctx, span := r.startSpan(ctx, "GetStudyGroups")
	defer func() { finishSpan(span, err) }()

	groups, err = r.store.ListStudyGroups(ctx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return groups, nil
}

// SearchStudyGroups returns groups whose subject name equals subject,
// ignoring case. Unknown names yield an empty result.
func (r *Repository) SearchStudyGroups(ctx context.Context, subject string) (groups []*models.StudyGroup, err error) {
	ctx, span := r.startSpan(ctx, "SearchStudyGroups")
	defer func() { finishSpan(span, err) }()

	all, err := r.store.ListStudyGroups(ctx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return FilterBySubject(all, subject), nil
}

// GetStudyGroupsSortedByCreationDate returns all groups ordered by creation
// date. Groups with equal dates keep insertion order in both directions.
func (r *Repository) GetStudyGroupsSortedByCreationDate(ctx context.Context, descending bool) (groups []*models.StudyGroup, err error) {
	ctx, span := r.startSpan(ctx, "GetStudyGroupsSortedByCreationDate")
	defer func() { finishSpan(span, err) }()

	groups, err = r.store.ListStudyGroups(ctx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	SortByCreateDate(groups, descending)
	return groups, nil
}

// GetStudyGroupsFilteredAndSorted applies the subject filter when subject is
// non-empty, then sorts by creation date.
func (r *Repository) GetStudyGroupsFilteredAndSorted(ctx context.Context, subject string, descending bool) (groups []*models.StudyGroup, err error) {
	ctx, span := r.startSpan(ctx, "GetStudyGroupsFilteredAndSorted")
	defer func() { finishSpan(span, err) }()

	groups, err = r.store.ListStudyGroups(ctx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if subject != "" {
		groups = FilterBySubject(groups, subject)
	}
	SortByCreateDate(groups, descending)
	return groups, nil
}

// GetStudyGroupsWithUserStartingWithM scans every group and keeps those with a
// member whose name starts with "M", oldest first.
func (r *Repository) GetStudyGroupsWithUserStartingWithM(ctx context.Context) (groups []*models.StudyGroup, err error) {
	ctx, span := r.startSpan(ctx, "GetStudyGroupsWithUserStartingWithM")
	defer func() { finishSpan(span, err) }()
	defer r.observeMemberQuery("scan", time.Now())

	all, err := r.store.ListStudyGroups(ctx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	groups = make([]*models.StudyGroup, 0, len(all))
	for _, g := range all {
		if g.HasMemberNamePrefix(MemberPrefix) {
			groups = append(groups, g)
		}
	}
	SortByCreateDate(groups, false)
	return groups, nil
}

// GetStudyGroupsWithUserStartingWithMInMemoryDatabase answers the same
// question as GetStudyGroupsWithUserStartingWithM with a query executed by the
// store backend.
func (r *Repository) GetStudyGroupsWithUserStartingWithMInMemoryDatabase(ctx context.Context) (groups []*models.StudyGroup, err error) {
	ctx, span := r.startSpan(ctx, "GetStudyGroupsWithUserStartingWithMInMemoryDatabase")
	defer func() { finishSpan(span, err) }()
	defer r.observeMemberQuery("store", time.Now())

	groups, err = r.store.FindStudyGroupsByMemberPrefix(ctx, MemberPrefix)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return groups, nil
}

// UserAlreadyHasGroupForSubject reports whether userID is a member of any group
// with the given subject.
func (r *Repository) UserAlreadyHasGroupForSubject(ctx context.Context, userID models.UserID, subject models.Subject) (found bool, err error) {
	ctx, span := r.startSpan(ctx, "UserAlreadyHasGroupForSubject")
	defer func() { finishSpan(span, err) }()

	groups, err := r.store.ListStudyGroups(ctx)
	if err != nil {
		return false, wrapStoreErr(err)
	}
	for _, g := range groups {
		if g.Subject() == subject && g.HasMember(userID) {
			return true, nil
		}
	}
	return false, nil
}

// UserIsMemberOfStudyGroupForSubject is UserAlreadyHasGroupForSubject under the
// name the join path uses.
func (r *Repository) UserIsMemberOfStudyGroupForSubject(ctx context.Context, userID models.UserID, subject models.Subject) (bool, error) {
	return r.UserAlreadyHasGroupForSubject(ctx, userID, subject)
}

// IsUserMemberOfStudyGroup reports membership; a missing group yields false.
func (r *Repository) IsUserMemberOfStudyGroup(ctx context.Context, userID models.UserID, studyGroupID models.StudyGroupID) (member bool, err error) {
	ctx, span := r.startSpan(ctx, "IsUserMemberOfStudyGroup")
	defer func() { finishSpan(span, err) }()

	g, err := r.store.FindStudyGroupByID(ctx, studyGroupID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, wrapStoreErr(err)
	}
	return g.HasMember(userID), nil
}

// GetStudyGroupByID returns the group, or nil with no error when it does not exist.
func (r *Repository) GetStudyGroupByID(ctx context.Context, id models.StudyGroupID) (group *models.StudyGroup, err error) {
	ctx, span := r.startSpan(ctx, "GetStudyGroupByID")
	defer func() { finishSpan(span, err) }()

	group, err = r.store.FindStudyGroupByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapStoreErr(err)
	}
	return group, nil
}

// GetUserByID returns the user, or nil with no error when it does not exist.
func (r *Repository) GetUserByID(ctx context.Context, id models.UserID) (user *models.User, err error) {
	ctx, span := r.startSpan(ctx, "GetUserByID")
	defer func() { finishSpan(span, err) }()

	user, err = r.store.FindUserByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, wrapStoreErr(err)
	}
	return user, nil
}

// FilterBySubject keeps groups whose subject name equals subject, ignoring case.
func FilterBySubject(groups []*models.StudyGroup, subject string) []*models.StudyGroup {
	out := make([]*models.StudyGroup, 0, len(groups))
	for _, g := range groups {
		if strings.EqualFold(g.Subject().String(), subject) {
			out = append(out, g)
		}
	}
	return out
}

// SortByCreateDate orders groups in place by creation date. The sort is stable
// so ties keep their current relative order.
func SortByCreateDate(groups []*models.StudyGroup, descending bool) {
	slices.SortStableFunc(groups, func(a, b *models.StudyGroup) int {
		if descending {
			return b.CreateDate().Compare(a.CreateDate())
		}
		return a.CreateDate().Compare(b.CreateDate())
	})
}
