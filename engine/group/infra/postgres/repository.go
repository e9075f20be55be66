package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterd/rosterd/engine/group/model"
	"github.com/rosterd/rosterd/engine/group/uc"
	"github.com/rosterd/rosterd/pkg/logger"
)

var groupColumns = []string{"id", "name", "status", "created_at", "updated_at"}

// DBInterface defines the minimal interface needed by the repository
// (pgxpool or pgxmock).
type DBInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements the group repository interface using PostgreSQL.
type Repository struct {
	db DBInterface
}

// NewRepository creates a new group repository.
func NewRepository(db DBInterface) uc.Repository {
	return &Repository{db: db}
}

func (r *Repository) withTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.FromContext(ctx).Warn("Transaction rollback failed after panic", "error", rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.FromContext(ctx).Warn("Transaction rollback failed", "error", rbErr)
			}
		} else if err = tx.Commit(ctx); err != nil {
			logger.FromContext(ctx).Error("Transaction commit failed", "error", err)
			err = fmt.Errorf("committing transaction: %w", err)
		}
	}()
	return fn(tx)
}

// List retrieves one page of groups ordered by ascending id.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*model.Group, error) {
	query, args, err := squirrel.Select(groupColumns...).
		From("groups").
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	groups := []*model.Group{}
	if err := pgxscan.Select(ctx, r.db, &groups, query, args...); err != nil {
		return nil, fmt.Errorf("scanning groups: %w", err)
	}
	return groups, nil
}

// Count returns the total number of groups.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM groups").Scan(&total); err != nil {
		return 0, fmt.Errorf("counting groups: %w", err)
	}
	return total, nil
}

// GetByID retrieves a group by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	query, args, err := squirrel.Select(groupColumns...).
		From("groups").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	var group model.Group
	if err := pgxscan.Get(ctx, r.db, &group, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, uc.ErrGroupNotFound
		}
		return nil, fmt.Errorf("scanning group: %w", err)
	}
	return &group, nil
}

// RemoveUser detaches userID from groupID and flips the group to empty when
// the departing user was its last member. Preconditions are checked from
// scratch on every call; nothing is assumed from prior invocations. The
// transaction takes an exclusive row lock on the group, so concurrent
// removals against the same group serialize and the member count each one
// observes is exact.
func (r *Repository) RemoveUser(ctx context.Context, groupID, userID int64) error {
	if err := r.checkMembership(ctx, groupID, userID); err != nil {
		return err
	}
	return r.withTransaction(ctx, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx, "SELECT status FROM groups WHERE id = $1 FOR UPDATE", groupID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return uc.ErrGroupNotFound
			}
			return fmt.Errorf("locking group: %w", err)
		}
		tag, err := tx.Exec(ctx,
			"UPDATE users SET group_id = NULL, updated_at = now() WHERE id = $1 AND group_id = $2",
			userID, groupID)
		if err != nil {
			return fmt.Errorf("detaching user: %w", err)
		}
		// A concurrent removal that won the lock first already detached
		// this user.
		if tag.RowsAffected() == 0 {
			return uc.ErrUserNotInGroup
		}
		var remaining int64
		if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE group_id = $1", groupID).Scan(&remaining); err != nil {
			return fmt.Errorf("counting remaining members: %w", err)
		}
		if remaining == 0 {
			if _, err := tx.Exec(ctx,
				"UPDATE groups SET status = $1, updated_at = now() WHERE id = $2",
				model.StatusEmpty, groupID); err != nil {
				return fmt.Errorf("marking group empty: %w", err)
			}
		}
		return nil
	})
}

func (r *Repository) checkMembership(ctx context.Context, groupID, userID int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1)", groupID).Scan(&exists); err != nil {
		return fmt.Errorf("checking group existence: %w", err)
	}
	if !exists {
		return uc.ErrGroupNotFound
	}
	var currentGroup *int64
	if err := r.db.QueryRow(ctx, "SELECT group_id FROM users WHERE id = $1", userID).Scan(&currentGroup); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uc.ErrUserNotFound
		}
		return fmt.Errorf("fetching user membership: %w", err)
	}
	if currentGroup == nil || *currentGroup != groupID {
		return uc.ErrUserNotInGroup
	}
	return nil
}
