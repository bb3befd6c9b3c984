// Package repository holds the study group command and query logic.
//
// It is the only place that decides what "already in a group for this subject"
// means and how query results are filtered and ordered. Persistence is reached
// through the Store port; each backend under internal/studygroup/store
// satisfies it.
package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"studygroups/internal/studygroup/metrics"
	"studygroups/internal/studygroup/models"
	dErrors "studygroups/pkg/domain-errors"
	"studygroups/pkg/platform/sentinel"
	"studygroups/pkg/requestcontext"
)

// Store is the persistence port. Implementations return sentinel.ErrNotFound
// (possibly wrapped) for missing entities and must hand out copies, never
// shared state.
type Store interface {
	CreateStudyGroup(ctx context.Context, group *models.StudyGroup) error
	CreateUser(ctx context.Context, user *models.User) error
	FindStudyGroupByID(ctx context.Context, id models.StudyGroupID) (*models.StudyGroup, error)
	FindUserByID(ctx context.Context, id models.UserID) (*models.User, error)
	ListStudyGroups(ctx context.Context) ([]*models.StudyGroup, error)
	// FindStudyGroupsByMemberPrefix returns each group with at least one member
	// whose name starts with prefix (ordinal, case-sensitive), ordered by
	// creation date ascending then id.
	FindStudyGroupsByMemberPrefix(ctx context.Context, prefix string) ([]*models.StudyGroup, error)
	// Execute loads a group, runs validate, applies mutate and saves the result
	// while holding the group exclusively. A validate error aborts without writing.
	Execute(ctx context.Context, id models.StudyGroupID, validate func(*models.StudyGroup) error, mutate func(*models.StudyGroup)) (*models.StudyGroup, error)
}

// MemberPrefix is the member-name prefix used by the "starting with M" queries.
const MemberPrefix = "M"

var tracer = otel.Tracer("studygroups/repository")

// Repository orchestrates study group and user operations over a Store.
type Repository struct {
	store             Store
	logger            *slog.Logger
	metrics           *metrics.Metrics
	creatorMembership bool
	clock             func() time.Time
}

type Option func(r *Repository)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) {
		r.metrics = m
	}
}

// WithCreatorMembership makes the requesting user the first member of a new
// group. Off by default: new groups start empty.
func WithCreatorMembership(enabled bool) Option {
	return func(r *Repository) {
		r.creatorMembership = enabled
	}
}

// WithClock overrides the creation-date source used when the context carries
// no request time.
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// New constructs a Repository.
func New(store Store, opts ...Option) *Repository {
	r := &Repository{store: store, clock: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) now(ctx context.Context) time.Time {
	if requestcontext.HasTime(ctx) {
		return requestcontext.Now(ctx)
	}
	return r.clock()
}

func (r *Repository) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "repository."+name)
}

// finishSpan records err on span and ends it.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *Repository) log(ctx context.Context, msg string, args ...any) {
	if r.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	r.logger.InfoContext(ctx, msg, args...)
}

func (r *Repository) observeMemberQuery(strategy string, start time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveMemberQuery(strategy, start)
	}
}

// wrapStoreErr keeps the store's message so callers relaying it verbatim
// still say something useful.
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, err.Error())
}

func isNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}
