package userrepo

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/userrepo"
)

const userColumns = `id, name, username, email, phone, website`

// Repo is a Postgres implementation of userrepo.Repository.
// Every call is a single parameterized statement; there is no explicit transaction.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Insert(ctx context.Context, u userrepo.User) (userrepo.User, error) {
	if r.pool == nil {
		return userrepo.User{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, username, email, phone, website)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.Name,
		u.Username,
		u.Email,
		u.Phone,
		u.Website,
	)
	out, err := scanUser(row)
	if err != nil {
		return userrepo.User{}, pkgerrors.Wrap(err, "insert user")
	}
	return out, nil
}

// Update binds all four mutable columns positionally. A NULL parameter keeps
// the current value through COALESCE, so omitted fields are never overwritten.
func (r *Repo) Update(ctx context.Context, id domain.UserID, p userrepo.Patch) (userrepo.User, error) {
	if r.pool == nil {
		return userrepo.User{}, errors.New("nil postgres pool")
	}
	pk, ok := parseID(id)
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	if p.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE($2, name),
		    email = COALESCE($3, email),
		    phone = COALESCE($4, phone),
		    website = COALESCE($5, website)
		WHERE id = $1
		RETURNING `+userColumns,
		pk,
		p.Name,
		p.Email,
		p.Phone,
		p.Website,
	)
	out, err := scanUser(row)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return userrepo.User{}, err
		}
		return userrepo.User{}, pkgerrors.Wrapf(err, "update user %s", id)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.UserID) (bool, error) {
	if r.pool == nil {
		return false, errors.New("nil postgres pool")
	}
	pk, ok := parseID(id)
	if !ok {
		return false, nil
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, pk)
	if err != nil {
		return false, pkgerrors.Wrapf(err, "delete user %s", id)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (userrepo.User, error) {
	if r.pool == nil {
		return userrepo.User{}, errors.New("nil postgres pool")
	}
	pk, ok := parseID(id)
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, pk)
	out, err := scanUser(row)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return userrepo.User{}, err
		}
		return userrepo.User{}, pkgerrors.Wrapf(err, "get user %s", id)
	}
	return out, nil
}

func (r *Repo) List(ctx context.Context) ([]userrepo.User, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list users")
	}
	defer rows.Close()

	out := make([]userrepo.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "scan user")
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "list users")
	}
	return out, nil
}

// --- helpers ---

// parseID maps a decimal id onto the BIGSERIAL key. Anything else cannot match a row.
func parseID(id domain.UserID) (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (userrepo.User, error) {
	var (
		id                                     int64
		name, username, email, phone, website string
	)
	if err := row.Scan(&id, &name, &username, &email, &phone, &website); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return userrepo.User{}, userrepo.ErrNotFound
		}
		return userrepo.User{}, err
	}
	return userrepo.User{
		ID:       domain.UserID(strconv.FormatInt(id, 10)),
		Name:     name,
		Username: username,
		Email:    email,
		Phone:    phone,
		Website:  website,
	}, nil
}
