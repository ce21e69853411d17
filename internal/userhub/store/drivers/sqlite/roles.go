package sqlite

import (
	"context"

	"github.com/cobaltlabs/userhub/internal/userhub/domain"
)

type rolesRepo struct {
	q dbtx
}

func (r *rolesRepo) ListRolesByUserID(ctx context.Context, userID string) ([]domain.RoleRef, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT mr.role_id, mr.role_name
		FROM m_roles mr
		JOIN r_user_roles rur ON rur.role_id = mr.role_id
		WHERE rur.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.RoleRef
	for rows.Next() {
		var role domain.RoleRef
		if err := rows.Scan(&role.RoleID, &role.RoleName); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.RoleRef) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO m_roles (role_id, role_name) VALUES (?, ?)`,
		role.RoleID, role.RoleName)
	return err
}

func (r *rolesRepo) AssignRole(ctx context.Context, userID, roleID string) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO r_user_roles (user_id, role_id) VALUES (?, ?)`,
		userID, roleID)
	return err
}
