// Package postgres is the PostgreSQL Store backend. Membership lives in the
// study_group_members join table, ordered by position.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"studygroups/internal/studygroup/models"
	"studygroups/pkg/platform/sentinel"
	txcontext "studygroups/pkg/platform/tx"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

const (
	selectGroupColumns = `SELECT id, name, subject, create_date FROM study_groups`

	selectMembers = `
SELECT m.study_group_id, u.id AS user_id, u.name, u.study_group_id AS user_study_group_id
FROM study_group_members m
JOIN users u ON u.id = m.user_id
WHERE m.study_group_id = ANY($1)
ORDER BY m.study_group_id, m.position`

	insertMembers = `
INSERT INTO study_group_members (study_group_id, user_id, position)
SELECT $1, t.user_id, t.ord - 1
FROM unnest($2::bigint[]) WITH ORDINALITY AS t(user_id, ord)`

	selectByMemberPrefix = selectGroupColumns + ` sg
WHERE EXISTS (
    SELECT 1 FROM study_group_members m
    JOIN users u ON u.id = m.user_id
    WHERE m.study_group_id = sg.id AND left(u.name, char_length($1)) = $1
)
ORDER BY sg.create_date, sg.id`
)

type groupRow struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	Subject    int       `db:"subject"`
	CreateDate time.Time `db:"create_date"`
}

type memberRow struct {
	StudyGroupID     int64         `db:"study_group_id"`
	UserID           int64         `db:"user_id"`
	Name             string        `db:"name"`
	UserStudyGroupID sql.NullInt64 `db:"user_study_group_id"`
}

type userRow struct {
	ID           int64         `db:"id"`
	Name         string        `db:"name"`
	StudyGroupID sql.NullInt64 `db:"study_group_id"`
}

// PostgresStore persists study groups and users in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// New constructs a PostgreSQL-backed store. The schema in Migrations must
// already be applied.
func New(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// conn returns the transaction carried by ctx, or the pool.
func (s *PostgresStore) conn(ctx context.Context) sqlx.ExtContext {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) CreateStudyGroup(ctx context.Context, group *models.StudyGroup) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if group.ID == 0 {
			var id int64
			err := tx.GetContext(ctx, &id,
				`INSERT INTO study_groups (name, subject, create_date) VALUES ($1, $2, $3) RETURNING id`,
				group.Name(), int(group.Subject()), group.CreateDate())
			if err != nil {
				return mapError("insert study group", err)
			}
			group.ID = models.StudyGroupID(id)
		} else {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO study_groups (id, name, subject, create_date) VALUES ($1, $2, $3, $4)`,
				int64(group.ID), group.Name(), int(group.Subject()), group.CreateDate())
			if err != nil {
				return mapError("insert study group", err)
			}
			if err := syncSequence(ctx, tx, "study_groups"); err != nil {
				return err
			}
		}

		members := group.MemberIDs()
		if err := writeMembers(ctx, tx, group.ID, members); err != nil {
			return err
		}
		return updateBackReferences(ctx, tx, group.ID, nil, members)
	})
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if user.ID != 0 {
			_, err := tx.ExecContext(ctx, `INSERT INTO users (id, name) VALUES ($1, $2)`, int64(user.ID), user.Name)
			if err != nil {
				return mapError("insert user", err)
			}
			return syncSequence(ctx, tx, "users")
		}
		var id int64
		if err := tx.GetContext(ctx, &id, `INSERT INTO users (name) VALUES ($1) RETURNING id`, user.Name); err != nil {
			return mapError("insert user", err)
		}
		user.ID = models.UserID(id)
		return nil
	})
}

func (s *PostgresStore) FindStudyGroupByID(ctx context.Context, id models.StudyGroupID) (*models.StudyGroup, error) {
	return findGroup(ctx, s.conn(ctx), id, "")
}

func (s *PostgresStore) FindUserByID(ctx context.Context, id models.UserID) (*models.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, s.conn(ctx), &row, `SELECT id, name, study_group_id FROM users WHERE id = $1`, int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &models.User{
		ID:           models.UserID(row.ID),
		Name:         row.Name,
		StudyGroupID: models.StudyGroupID(row.StudyGroupID.Int64),
	}, nil
}

func (s *PostgresStore) ListStudyGroups(ctx context.Context) ([]*models.StudyGroup, error) {
	q := s.conn(ctx)
	var rows []groupRow
	if err := sqlx.SelectContext(ctx, q, &rows, selectGroupColumns+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list study groups: %w", err)
	}
	return hydrate(ctx, q, rows)
}

func (s *PostgresStore) FindStudyGroupsByMemberPrefix(ctx context.Context, prefix string) ([]*models.StudyGroup, error) {
	q := s.conn(ctx)
	var rows []groupRow
	if err := sqlx.SelectContext(ctx, q, &rows, selectByMemberPrefix, prefix); err != nil {
		return nil, fmt.Errorf("find study groups by member prefix: %w", err)
	}
	return hydrate(ctx, q, rows)
}

// Execute locks the group row with SELECT ... FOR UPDATE for the length of the
// transaction, so concurrent membership changes to one group serialize.
func (s *PostgresStore) Execute(ctx context.Context, id models.StudyGroupID, validate func(*models.StudyGroup) error, mutate func(*models.StudyGroup)) (*models.StudyGroup, error) {
	var result *models.StudyGroup
	err := txcontext.Run(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		group, err := findGroup(ctx, tx, id, " FOR UPDATE")
		if err != nil {
			return err
		}
		if err := validate(group); err != nil {
			return err
		}
		before := group.MemberIDs()
		mutate(group)
		after := group.MemberIDs()

		if _, err := tx.ExecContext(ctx, `DELETE FROM study_group_members WHERE study_group_id = $1`, int64(id)); err != nil {
			return fmt.Errorf("clear members: %w", err)
		}
		if err := writeMembers(ctx, tx, id, after); err != nil {
			return err
		}
		if err := updateBackReferences(ctx, tx, id, before, after); err != nil {
			return err
		}

		result, err = findGroup(ctx, tx, id, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IsEmpty reports whether no study group has been stored yet.
func (s *PostgresStore) IsEmpty(ctx context.Context) (bool, error) {
	var empty bool
	if err := sqlx.GetContext(ctx, s.conn(ctx), &empty, `SELECT NOT EXISTS (SELECT 1 FROM study_groups)`); err != nil {
		return false, fmt.Errorf("check study groups: %w", err)
	}
	return empty, nil
}

func findGroup(ctx context.Context, q sqlx.QueryerContext, id models.StudyGroupID, lock string) (*models.StudyGroup, error) {
	var row groupRow
	err := sqlx.GetContext(ctx, q, &row, selectGroupColumns+` WHERE id = $1`+lock, int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find study group by id: %w", err)
	}
	groups, err := hydrate(ctx, q, []groupRow{row})
	if err != nil {
		return nil, err
	}
	return groups[0], nil
}

// hydrate loads members for rows with one query and keeps row order.
func hydrate(ctx context.Context, q sqlx.QueryerContext, rows []groupRow) ([]*models.StudyGroup, error) {
	groups := make([]*models.StudyGroup, 0, len(rows))
	if len(rows) == 0 {
		return groups, nil
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	var members []memberRow
	if err := sqlx.SelectContext(ctx, q, &members, selectMembers, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	byGroup := make(map[int64][]models.User, len(rows))
	for _, m := range members {
		byGroup[m.StudyGroupID] = append(byGroup[m.StudyGroupID], models.User{
			ID:           models.UserID(m.UserID),
			Name:         m.Name,
			StudyGroupID: models.StudyGroupID(m.UserStudyGroupID.Int64),
		})
	}
	for _, r := range rows {
		groups = append(groups, models.RestoreStudyGroup(
			models.StudyGroupID(r.ID), r.Name, models.Subject(r.Subject), r.CreateDate, byGroup[r.ID]))
	}
	return groups, nil
}

func writeMembers(ctx context.Context, tx *sqlx.Tx, id models.StudyGroupID, members []models.UserID) error {
	if len(members) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, insertMembers, int64(id), pq.Array(toInt64s(members))); err != nil {
		return mapError("insert members", err)
	}
	return nil
}

func updateBackReferences(ctx context.Context, tx *sqlx.Tx, id models.StudyGroupID, before, after []models.UserID) error {
	joined, left := models.DiffMembers(before, after)
	if len(joined) > 0 {
		_, err := tx.ExecContext(ctx,
			`UPDATE users SET study_group_id = $1 WHERE id = ANY($2)`,
			int64(id), pq.Array(toInt64s(joined)))
		if err != nil {
			return fmt.Errorf("set user study group: %w", err)
		}
	}
	if len(left) > 0 {
		_, err := tx.ExecContext(ctx,
			`UPDATE users SET study_group_id = NULL WHERE id = ANY($2) AND study_group_id = $1`,
			int64(id), pq.Array(toInt64s(left)))
		if err != nil {
			return fmt.Errorf("clear user study group: %w", err)
		}
	}
	return nil
}

// syncSequence moves a BIGSERIAL sequence past explicitly inserted ids.
func syncSequence(ctx context.Context, tx *sqlx.Tx, table string) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT MAX(id) FROM %s), 1))`, table, table)
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("sync %s sequence: %w", table, err)
	}
	return nil
}

func mapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toInt64s(ids []models.UserID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
