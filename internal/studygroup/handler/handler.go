package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"studygroups/internal/studygroup/models"
	"studygroups/internal/studygroup/repository"
	dErrors "studygroups/pkg/domain-errors"
	"studygroups/pkg/platform/httputil"
	"studygroups/pkg/requestcontext"
)

// Repository defines the study group operations the handler needs.
type Repository interface {
	CreateStudyGroup(ctx context.Context, req models.CreationRequest) (models.StudyGroupID, error)
	CreateUser(ctx context.Context, name string) (*models.User, error)
	GetStudyGroups(ctx context.Context) ([]*models.StudyGroup, error)
	SearchStudyGroups(ctx context.Context, subject string) ([]*models.StudyGroup, error)
	GetStudyGroupsSortedByCreationDate(ctx context.Context, descending bool) ([]*models.StudyGroup, error)
	GetStudyGroupsWithUserStartingWithM(ctx context.Context) ([]*models.StudyGroup, error)
	GetStudyGroupsWithUserStartingWithMInMemoryDatabase(ctx context.Context) ([]*models.StudyGroup, error)
	UserAlreadyHasGroupForSubject(ctx context.Context, userID models.UserID, subject models.Subject) (bool, error)
	UserIsMemberOfStudyGroupForSubject(ctx context.Context, userID models.UserID, subject models.Subject) (bool, error)
	IsUserMemberOfStudyGroup(ctx context.Context, userID models.UserID, studyGroupID models.StudyGroupID) (bool, error)
	JoinStudyGroup(ctx context.Context, studyGroupID models.StudyGroupID, userID models.UserID) error
	LeaveStudyGroup(ctx context.Context, studyGroupID models.StudyGroupID, userID models.UserID) error
	GetStudyGroupByID(ctx context.Context, id models.StudyGroupID) (*models.StudyGroup, error)
	GetUserByID(ctx context.Context, id models.UserID) (*models.User, error)
}

// Handler exposes study group and user endpoints.
type Handler struct {
	repo   Repository
	logger *slog.Logger
}

// New constructs a study group handler.
func New(repo Repository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Register mounts study group and user endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/studygroups", func(r chi.Router) {
		r.Post("/", h.HandleCreateStudyGroup)
		r.Get("/", h.HandleGetStudyGroups)
		r.Get("/search", h.HandleSearchStudyGroups)
		r.Get("/filtered", h.HandleGetFilteredAndSortedStudyGroups)
		r.Get("/sorted", h.HandleGetStudyGroupsSortedByCreationDate)
		r.Get("/members-starting-with-m", h.HandleGetStudyGroupsWithUserStartingWithM)
		r.Get("/members-starting-with-m/db", h.HandleGetStudyGroupsWithUserStartingWithMInMemoryDatabase)
		r.Get("/{id}", h.HandleGetStudyGroupByID)
		r.Post("/{id}/join", h.HandleJoinStudyGroup)
		r.Post("/{id}/leave", h.HandleLeaveStudyGroup)
	})
	r.Post("/users", h.HandleCreateUser)
	r.Get("/users/{id}", h.HandleGetUserByID)
}

// HandleCreateStudyGroup handles POST /studygroups.
func (h *Handler) HandleCreateStudyGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CreateStudyGroupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	creation := req.ToCreationRequest()

	exists, err := h.repo.UserAlreadyHasGroupForSubject(ctx, creation.UserID, creation.Subject)
	if err != nil {
		h.fail(ctx, w, "conflict check failed", err)
		return
	}
	if exists {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "user already has a study group for this subject"))
		return
	}

	id, err := h.repo.CreateStudyGroup(ctx, creation)
	if err != nil {
		h.logger.WarnContext(ctx, "study group creation rejected",
			"request_id", requestID,
			"user_id", creation.UserID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "study group created",
		"request_id", requestID,
		"study_group_id", id,
		"user_id", creation.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	w.Header().Set("Location", fmt.Sprintf("/studygroups/%d", id))
	w.WriteHeader(http.StatusCreated)
}

// HandleGetStudyGroups handles GET /studygroups.
func (h *Handler) HandleGetStudyGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.repo.GetStudyGroups(r.Context())
	h.writeGroups(w, r, "list study groups failed", groups, err)
}

// HandleSearchStudyGroups handles GET /studygroups/search?subject=.
func (h *Handler) HandleSearchStudyGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.repo.SearchStudyGroups(r.Context(), r.URL.Query().Get("subject"))
	h.writeGroups(w, r, "search study groups failed", groups, err)
}

// HandleGetFilteredAndSortedStudyGroups handles GET /studygroups/filtered.
// Filtering and ordering happen here over the full list.
func (h *Handler) HandleGetFilteredAndSortedStudyGroups(w http.ResponseWriter, r *http.Request) {
	descending, err := parseDescending(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	groups, err := h.repo.GetStudyGroups(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "list study groups failed", err)
		return
	}
	if subject := r.URL.Query().Get("subject"); subject != "" {
		groups = repository.FilterBySubject(groups, subject)
	}
	repository.SortByCreateDate(groups, descending)
	httputil.WriteJSON(w, http.StatusOK, FromStudyGroups(groups))
}

// HandleGetStudyGroupsSortedByCreationDate handles GET /studygroups/sorted?desc=.
func (h *Handler) HandleGetStudyGroupsSortedByCreationDate(w http.ResponseWriter, r *http.Request) {
	descending, err := parseDescending(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	groups, err := h.repo.GetStudyGroupsSortedByCreationDate(r.Context(), descending)
	h.writeGroups(w, r, "sort study groups failed", groups, err)
}

func (h *Handler) HandleGetStudyGroupsWithUserStartingWithM(w http.ResponseWriter, r *http.Request) {
	groups, err := h.repo.GetStudyGroupsWithUserStartingWithM(r.Context())
	h.writeGroups(w, r, "member prefix scan failed", groups, err)
}

func (h *Handler) HandleGetStudyGroupsWithUserStartingWithMInMemoryDatabase(w http.ResponseWriter, r *http.Request) {
	groups, err := h.repo.GetStudyGroupsWithUserStartingWithMInMemoryDatabase(r.Context())
	h.writeGroups(w, r, "member prefix query failed", groups, err)
}

// HandleGetStudyGroupByID handles GET /studygroups/{id}.
func (h *Handler) HandleGetStudyGroupByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseStudyGroupID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	group, err := h.repo.GetStudyGroupByID(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get study group failed", err)
		return
	}
	if group == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "study group not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStudyGroup(group))
}

// HandleJoinStudyGroup handles POST /studygroups/{id}/join.
func (h *Handler) HandleJoinStudyGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	studyGroupID, err := parseStudyGroupID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[MembershipRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	userID := models.UserID(req.UserID)

	group, err := h.repo.GetStudyGroupByID(ctx, studyGroupID)
	if err != nil {
		h.fail(ctx, w, "get study group failed", err)
		return
	}
	if group == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "study group not found"))
		return
	}

	member, err := h.repo.UserIsMemberOfStudyGroupForSubject(ctx, userID, group.Subject())
	if err != nil {
		h.fail(ctx, w, "membership check failed", err)
		return
	}
	if member {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "user is already a member of a study group for this subject"))
		return
	}

	if err := h.repo.JoinStudyGroup(ctx, studyGroupID, userID); err != nil {
		h.fail(ctx, w, "join study group failed", err)
		return
	}

	h.logger.InfoContext(ctx, "user joined study group",
		"request_id", requestID,
		"study_group_id", studyGroupID,
		"user_id", userID,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleLeaveStudyGroup handles POST /studygroups/{id}/leave.
func (h *Handler) HandleLeaveStudyGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	studyGroupID, err := parseStudyGroupID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[MembershipRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	userID := models.UserID(req.UserID)

	member, err := h.repo.IsUserMemberOfStudyGroup(ctx, userID, studyGroupID)
	if err != nil {
		h.fail(ctx, w, "membership check failed", err)
		return
	}
	if !member {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("user with id %d is not a member of study group with id %d", userID, studyGroupID)))
		return
	}

	if err := h.repo.LeaveStudyGroup(ctx, studyGroupID, userID); err != nil {
		h.fail(ctx, w, "leave study group failed", err)
		return
	}

	h.logger.InfoContext(ctx, "user left study group",
		"request_id", requestID,
		"study_group_id", studyGroupID,
		"user_id", userID,
	)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateUser handles POST /users.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateUserRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	user, err := h.repo.CreateUser(ctx, req.Name)
	if err != nil {
		h.fail(ctx, w, "create user failed", err)
		return
	}

	h.logger.InfoContext(ctx, "user created",
		"request_id", requestID,
		"user_id", user.ID,
	)
	w.Header().Set("Location", fmt.Sprintf("/users/%d", user.ID))
	httputil.WriteJSON(w, http.StatusCreated, FromUser(user))
}

// HandleGetUserByID handles GET /users/{id}.
func (h *Handler) HandleGetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid user id"))
		return
	}
	user, err := h.repo.GetUserByID(ctx, models.UserID(id))
	if err != nil {
		h.fail(ctx, w, "get user failed", err)
		return
	}
	if user == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "user not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromUser(user))
}

func (h *Handler) writeGroups(w http.ResponseWriter, r *http.Request, failure string, groups []*models.StudyGroup, err error) {
	if err != nil {
		h.fail(r.Context(), w, failure, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStudyGroups(groups))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

func parseStudyGroupID(r *http.Request) (models.StudyGroupID, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid study group id")
	}
	return models.StudyGroupID(id), nil
}

// parseDescending reads the optional desc query flag. Absent means ascending.
func parseDescending(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("desc")
	if raw == "" {
		return false, nil
	}
	desc, err := strconv.ParseBool(raw)
	if err != nil {
		return false, dErrors.New(dErrors.CodeBadRequest, "desc must be a boolean")
	}
	return desc, nil
}
