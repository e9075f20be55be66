package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterd/rosterd/engine/user/model"
	"github.com/rosterd/rosterd/engine/user/uc"
	"github.com/rosterd/rosterd/pkg/logger"
)

var userColumns = []string{"id", "name", "status", "group_id", "created_at", "updated_at"}

// statusUpdateOrder fixes the order in which per-status batches are issued so
// the statement sequence inside the transaction is deterministic.
var statusUpdateOrder = []model.Status{model.StatusPending, model.StatusActive, model.StatusBlocked}

// DBInterface defines the minimal interface needed by the repository
// (pgxpool or pgxmock).
type DBInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements the user repository interface using PostgreSQL.
type Repository struct {
	db DBInterface
}

// NewRepository creates a new user repository.
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

// List retrieves one page of users ordered by ascending id.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From("users").
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	users := []*model.User{}
	if err := pgxscan.Select(ctx, r.db, &users, query, args...); err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}
	return users, nil
}

// Count returns the total number of users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return total, nil
}

// ListAfter retrieves up to limit users with id strictly greater than cursor,
// ordered by ascending id.
func (r *Repository) ListAfter(ctx context.Context, cursor int64, limit int) ([]*model.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Gt{"id": cursor}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	users := []*model.User{}
	if err := pgxscan.Select(ctx, r.db, &users, query, args...); err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	var user model.User
	if err := pgxscan.Get(ctx, r.db, &user, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, uc.ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &user, nil
}

// BulkUpdateStatus applies all updates inside one transaction. Every
// referenced id is verified first; when any is missing the transaction rolls
// back with a MissingIDsError enumerating all of them. Updates are issued as
// one batched statement per distinct target status, so the write count is
// bounded by the number of status values, not the request size.
func (r *Repository) BulkUpdateStatus(ctx context.Context, updates []uc.StatusUpdate) (int, error) {
	ids := make([]int64, len(updates))
	byStatus := make(map[model.Status][]int64)
	for i, u := range updates {
		ids[i] = u.ID
		byStatus[u.Status] = append(byStatus[u.Status], u.ID)
	}
	err := r.withTransaction(ctx, func(tx pgx.Tx) error {
		missing, err := r.missingIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return &uc.MissingIDsError{IDs: missing}
		}
		for _, status := range statusUpdateOrder {
			batch := byStatus[status]
			if len(batch) == 0 {
				continue
			}
			query, args, err := squirrel.Update("users").
				Set("status", status).
				Set("updated_at", squirrel.Expr("now()")).
				Where(squirrel.Eq{"id": batch}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("building update query: %w", err)
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("updating user statuses: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(updates), nil
}

func (r *Repository) missingIDs(ctx context.Context, tx pgx.Tx, ids []int64) ([]int64, error) {
	query, args, err := squirrel.Select("id").
		From("users").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building existence query: %w", err)
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("checking user existence: %w", err)
	}
	defer rows.Close()
	existing := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %w", err)
		}
		existing[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading user ids: %w", err)
	}
	var missing []int64
	for _, id := range ids {
		if !existing[id] {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing, nil
}
