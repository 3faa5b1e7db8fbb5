package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/socratai/socratai/internal/quiz"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) CreateUser(ctx context.Context, u quiz.User) error {
	q := r.s.builder().Insert(usersTable.Name).
		Columns("id", "email", "username", "password_hash", "created_at").
		Values(u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt.UTC())
	if err := r.s.exec(ctx, q); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *userRepo) GetUser(ctx context.Context, id string) (*quiz.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*quiz.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepo) getBy(ctx context.Context, column, value string) (*quiz.User, error) {
	b := r.s.builder()
	t := b.Table(usersTable.Name)
	sel := b.Select(t.C("id"), t.C("email"), t.C("username"), t.C("password_hash"), t.C("created_at")).
		From(t).
		Where(entsql.EQ(t.C(column), value)).
		Limit(1)

	query, args := sel.Query()
	var u quiz.User
	err := r.s.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user by %s: %w", column, err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
