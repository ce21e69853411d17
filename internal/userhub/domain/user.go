package domain

import "time"

// DeleteFlgActive marks a live account; any other value means the account
// has been deactivated and must not authenticate.
const DeleteFlgActive int64 = 0

// Identity is the request-scoped representation of an authenticated caller.
// It is rebuilt on every request from the verified token payload plus a live
// directory lookup and never cached across requests.
type Identity struct {
	UserID    string `json:"userId"`
	LastName  string `json:"lastName"`
	Age       int64  `json:"age"`
	DeleteFlg int64  `json:"deleteFlg"`
}

// Active reports whether the backing account may authenticate.
func (i Identity) Active() bool { return i.DeleteFlg == DeleteFlgActive }

// Credential is an identity joined with its stored login material.
type Credential struct {
	Identity

	Username     string
	PasswordHash string
}

// User is the full directory record, used when seeding and creating users.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Age          int64
	Address      string
	Verified     bool
	DeleteFlg    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleRef identifies one role assignment.
type RoleRef struct {
	RoleID   string `json:"roleId"`
	RoleName string `json:"roleName"`
}

// UserRow is one row of the user listing: a user joined with a single role.
// Users holding several roles appear once per role, as the listing query
// joins the assignment table.
type UserRow struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	RoleID     string `json:"roleId"`
	RoleName   string `json:"roleName"`
	Age        int64  `json:"age"`
	Address    string `json:"address"`
	IsVerified int64  `json:"isVerified"`
}

// UserDetail is a single user with its role rows collapsed into one record.
type UserDetail struct {
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Age        int64     `json:"age"`
	Address    string    `json:"address"`
	IsVerified int64     `json:"isVerified"`
	Roles      []RoleRef `json:"roles"`
}
