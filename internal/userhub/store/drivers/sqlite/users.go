package sqlite

import (
	"context"
	"strings"

	"github.com/cobaltlabs/userhub/internal/userhub/domain"
)

type usersRepo struct {
	q dbtx
}

// sortColumns whitelists the ORDER BY targets for the listing query. The
// service layer validates client input first; this mapping is the only place
// a sort value ever reaches SQL, so injection is structurally impossible.
var sortColumns = map[string]string{
	"FIRSTNAME": "mu.first_name",
	"LASTNAME":  "mu.last_name",
	"AGE":       "mu.age",
	"ADDRESS":   "mu.address",
}

const defaultSortColumn = "mu.first_name || mu.last_name"

const listSelect = `
	SELECT
		mu.first_name,
		mu.last_name,
		mr.role_id,
		mr.role_name,
		mu.age,
		mu.address,
		mu.verified
	FROM m_users mu
	JOIN r_user_roles rur ON rur.user_id = mu.user_id
	JOIN m_roles mr ON mr.role_id = rur.role_id
`

func (r *usersRepo) GetIdentityByID(ctx context.Context, userID string) (domain.Identity, error) {
	var identity domain.Identity
	err := r.q.QueryRowContext(ctx, `
		SELECT user_id, last_name, age, delete_flg
		FROM m_users
		WHERE user_id = ?`, userID,
	).Scan(&identity.UserID, &identity.LastName, &identity.Age, &identity.DeleteFlg)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return identity, nil
}

func (r *usersRepo) GetCredentialByUsername(ctx context.Context, username string) (domain.Credential, error) {
	var cred domain.Credential
	err := r.q.QueryRowContext(ctx, `
		SELECT user_id, last_name, age, delete_flg, username, password_hash
		FROM m_users
		WHERE username = ?`, username,
	).Scan(&cred.UserID, &cred.LastName, &cred.Age, &cred.DeleteFlg,
		&cred.Username, &cred.PasswordHash)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return cred, nil
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	var total int
	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM m_users mu
		JOIN r_user_roles rur ON rur.user_id = mu.user_id
		JOIN m_roles mr ON mr.role_id = rur.role_id`,
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *usersRepo) ListUsers(ctx context.Context, limit, offset int, sortField, sortType string) ([]domain.UserRow, error) {
	orderBy := defaultSortColumn
	if col, ok := sortColumns[strings.ToUpper(sortField)]; ok {
		orderBy = col
	}

	direction := "ASC"
	if strings.EqualFold(sortType, "DESC") {
		direction = "DESC"
	}

	rows, err := r.q.QueryContext(ctx,
		listSelect+" ORDER BY "+orderBy+" "+direction+" LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUserRows(rows)
}

func (r *usersRepo) ListUserDetail(ctx context.Context, userID string) ([]domain.UserRow, error) {
	rows, err := r.q.QueryContext(ctx, listSelect+" WHERE mu.user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUserRows(rows)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	verified := 0
	if u.Verified {
		verified = 1
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO m_users (user_id, username, password_hash, first_name, last_name, age, address, verified, delete_flg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName,
		u.Age, u.Address, verified, u.DeleteFlg)
	return err
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanUserRows(rows rowScanner) ([]domain.UserRow, error) {
	var out []domain.UserRow
	for rows.Next() {
		var row domain.UserRow
		if err := rows.Scan(&row.FirstName, &row.LastName, &row.RoleID,
			&row.RoleName, &row.Age, &row.Address, &row.IsVerified); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
