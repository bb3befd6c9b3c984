// Package sqlite is the embedded SQL Store backend built on gorm. It defaults
// to a shared-cache in-memory database.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studygroups/internal/studygroup/models"
	"studygroups/pkg/platform/sentinel"
)

// DefaultDSN is a process-wide in-memory database.
const DefaultDSN = "file::memory:?cache=shared"

const selectMembers = `
SELECT m.study_group_id, u.id AS user_id, u.name, u.study_group_id AS user_study_group_id
FROM study_group_members m
JOIN users u ON u.id = m.user_id
WHERE m.study_group_id IN ?
ORDER BY m.study_group_id, m.position`

// substr keeps the comparison ordinal and case-sensitive; LIKE would fold ASCII case.
const selectByMemberPrefix = `
SELECT DISTINCT sg.id, sg.name, sg.subject, sg.create_date
FROM study_groups sg
JOIN study_group_members m ON m.study_group_id = sg.id
JOIN users u ON u.id = m.user_id
WHERE substr(u.name, 1, ?) = ?
ORDER BY sg.create_date, sg.id`

// Store persists study groups and users through gorm.
type Store struct {
	db *gorm.DB
}

// Open opens dsn and migrates the schema. The pool is limited to one
// connection, which serializes transactions the way row locks do elsewhere.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&userEntity{}, &studyGroupEntity{}, &memberEntity{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateStudyGroup(ctx context.Context, group *models.StudyGroup) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members := group.MemberIDs()
		if err := requireUsers(tx, members); err != nil {
			return err
		}

		row := studyGroupEntity{
			ID:         int64(group.ID),
			Name:       group.Name(),
			Subject:    int(group.Subject()),
			CreateDate: group.CreateDate().UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return mapError("insert study group", err)
		}
		group.ID = models.StudyGroupID(row.ID)

		if err := writeMembers(tx, group.ID, members); err != nil {
			return err
		}
		return updateBackReferences(tx, group.ID, nil, members)
	})
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	row := userEntity{ID: int64(user.ID), Name: user.Name}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError("insert user", err)
	}
	user.ID = models.UserID(row.ID)
	return nil
}

func (s *Store) FindStudyGroupByID(ctx context.Context, id models.StudyGroupID) (*models.StudyGroup, error) {
	return findGroup(s.db.WithContext(ctx), id)
}

func (s *Store) FindUserByID(ctx context.Context, id models.UserID) (*models.User, error) {
	var row userEntity
	if err := s.db.WithContext(ctx).First(&row, int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &models.User{
		ID:           models.UserID(row.ID),
		Name:         row.Name,
		StudyGroupID: groupIDOrZero(row.StudyGroupID),
	}, nil
}

func (s *Store) ListStudyGroups(ctx context.Context) ([]*models.StudyGroup, error) {
	db := s.db.WithContext(ctx)
	var rows []studyGroupEntity
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list study groups: %w", err)
	}
	return hydrate(db, rows)
}

// FindStudyGroupsByMemberPrefix runs a raw join so the filtering happens in SQLite.
func (s *Store) FindStudyGroupsByMemberPrefix(ctx context.Context, prefix string) ([]*models.StudyGroup, error) {
	db := s.db.WithContext(ctx)
	var rows []studyGroupEntity
	err := db.Raw(selectByMemberPrefix, utf8.RuneCountInString(prefix), prefix).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find study groups by member prefix: %w", err)
	}
	return hydrate(db, rows)
}

// Execute runs inside a transaction on the single pooled connection, so no
// other write can interleave between load and save.
func (s *Store) Execute(ctx context.Context, id models.StudyGroupID, validate func(*models.StudyGroup) error, mutate func(*models.StudyGroup)) (*models.StudyGroup, error) {
	var result *models.StudyGroup
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := findGroup(tx, id)
		if err != nil {
			return err
		}
		if err := validate(group); err != nil {
			return err
		}
		before := group.MemberIDs()
		mutate(group)
		after := group.MemberIDs()

		if err := requireUsers(tx, after); err != nil {
			return err
		}
		if err := tx.Where("study_group_id = ?", int64(id)).Delete(&memberEntity{}).Error; err != nil {
			return fmt.Errorf("clear members: %w", err)
		}
		if err := writeMembers(tx, id, after); err != nil {
			return err
		}
		if err := updateBackReferences(tx, id, before, after); err != nil {
			return err
		}

		result, err = findGroup(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IsEmpty reports whether no study group has been stored yet.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&studyGroupEntity{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count study groups: %w", err)
	}
	return count == 0, nil
}

func findGroup(db *gorm.DB, id models.StudyGroupID) (*models.StudyGroup, error) {
	var row studyGroupEntity
	if err := db.First(&row, int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find study group by id: %w", err)
	}
	groups, err := hydrate(db, []studyGroupEntity{row})
	if err != nil {
		return nil, err
	}
	return groups[0], nil
}

func hydrate(db *gorm.DB, rows []studyGroupEntity) ([]*models.StudyGroup, error) {
	groups := make([]*models.StudyGroup, 0, len(rows))
	if len(rows) == 0 {
		return groups, nil
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	var members []memberRow
	if err := db.Raw(selectMembers, ids).Scan(&members).Error; err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	byGroup := make(map[int64][]models.User, len(rows))
	for _, m := range members {
		byGroup[m.StudyGroupID] = append(byGroup[m.StudyGroupID], models.User{
			ID:           models.UserID(m.UserID),
			Name:         m.Name,
			StudyGroupID: groupIDOrZero(m.UserStudyGroupID),
		})
	}
	for _, r := range rows {
		groups = append(groups, models.RestoreStudyGroup(
			models.StudyGroupID(r.ID), r.Name, models.Subject(r.Subject), r.CreateDate, byGroup[r.ID]))
	}
	return groups, nil
}

func requireUsers(tx *gorm.DB, ids []models.UserID) error {
	if len(ids) == 0 {
		return nil
	}
	distinct := make(map[models.UserID]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	var count int64
	if err := tx.Model(&userEntity{}).Where("id IN ?", toInt64s(ids)).Count(&count).Error; err != nil {
		return fmt.Errorf("check members: %w", err)
	}
	if int(count) != len(distinct) {
		return fmt.Errorf("member user: %w", sentinel.ErrNotFound)
	}
	return nil
}

func writeMembers(tx *gorm.DB, id models.StudyGroupID, members []models.UserID) error {
	if len(members) == 0 {
		return nil
	}
	rows := make([]memberEntity, len(members))
	for i, uid := range members {
		rows[i] = memberEntity{StudyGroupID: int64(id), Position: i, UserID: int64(uid)}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return mapError("insert members", err)
	}
	return nil
}

func updateBackReferences(tx *gorm.DB, id models.StudyGroupID, before, after []models.UserID) error {
	joined, left := models.DiffMembers(before, after)
	if len(joined) > 0 {
		err := tx.Model(&userEntity{}).
			Where("id IN ?", toInt64s(joined)).
			Update("study_group_id", int64(id)).Error
		if err != nil {
			return fmt.Errorf("set user study group: %w", err)
		}
	}
	if len(left) > 0 {
		err := tx.Model(&userEntity{}).
			Where("id IN ? AND study_group_id = ?", toInt64s(left), int64(id)).
			Update("study_group_id", nil).Error
		if err != nil {
			return fmt.Errorf("clear user study group: %w", err)
		}
	}
	return nil
}

func mapError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func groupIDOrZero(id *int64) models.StudyGroupID {
	if id == nil {
		return 0
	}
	return models.StudyGroupID(*id)
}

func toInt64s(ids []models.UserID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
