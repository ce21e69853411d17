package service

import (
	"context"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cobaltlabs/userhub/internal/userhub/domain"
	"github.com/cobaltlabs/userhub/internal/userhub/store"
	"github.com/cobaltlabs/userhub/pkg/apierr"
)

// UserService serves the admin user listing and the user detail view.
type UserService struct {
	Store     store.Store
	Directory *DirectoryService
}

// ListParams carries the raw listing query parameters. A nil pointer means
// the parameter was absent from the query string, which validates differently
// from present-but-empty.
type ListParams struct {
	Limit       *string
	CurrentPage *string
	SortField   *string
	SortType    *string
}

var integerPattern = regexp.MustCompile(`^[0-9]+$`)

// ListUsers returns one page of the user directory. Validation runs in two
// collected passes (presence, then values) so every violation in a pass is
// reported together, then the caller's admin role is checked before any data
// is touched.
func (s *UserService) ListUsers(ctx context.Context, callerID string, q ListParams) (*domain.UserPage, error) {
	var messages, params []string
	requireParam := func(name string, v *string) {
		if v == nil {
			messages = append(messages, "The "+name+" parameter is required.")
			params = append(params, name)
		}
	}
	requireParam("limit", q.Limit)
	requireParam("currentPage", q.CurrentPage)
	requireParam("sortField", q.SortField)
	requireParam("sortType", q.SortType)
	if len(messages) > 0 {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeMissingListParam, messages...).
			WithParams(params...)
	}

	invalidParam := func(value string) {
		messages = append(messages, "The parameter value "+value+" is invalid.")
		params = append(params, value)
	}

	limit, ok := parseInteger(*q.Limit)
	if !ok || !slices.Contains(domain.PageLimits, limit) {
		invalidParam(*q.Limit)
	}
	currentPage, ok := parseInteger(*q.CurrentPage)
	if !ok || currentPage <= 0 {
		invalidParam(*q.CurrentPage)
	}
	sortType := strings.ToUpper(*q.SortType)
	if !slices.Contains(domain.SortTypes, sortType) {
		invalidParam(*q.SortType)
	}
	sortField := strings.ToUpper(*q.SortField)
	if sortField != "" && !slices.Contains(domain.UserSortFields, sortField) {
		invalidParam(*q.SortField)
	}
	if len(messages) > 0 {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeInvalidListParam, messages...).
			WithParams(params...)
	}

	roles, err := s.Store.Roles().ListRolesByUserID(ctx, callerID)
	if err != nil {
		return nil, apierr.Repository(apierr.CodeQueryRoles,
			"ListRolesByUserID", []string{callerID}, err)
	}
	if !hasRole(roles, domain.AdminRoleID) {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeForbiddenRole,
			"The user is not allowed to access resource.").
			WithParams(callerID)
	}

	totalRecords, err := s.Store.Users().CountUsers(ctx)
	if err != nil {
		return nil, apierr.Repository(apierr.CodeQueryCountUsers, "CountUsers", nil, err)
	}

	offset := limit * (currentPage - 1)
	if offset > totalRecords {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodePagination,
			"The page to get data does not exist.").
			WithParams(*q.Limit, *q.CurrentPage)
	}
	totalPages := (totalRecords + limit - 1) / limit

	users, err := s.Store.Users().ListUsers(ctx, limit, offset, sortField, sortType)
	if err != nil {
		return nil, apierr.Repository(apierr.CodeQueryUsers, "ListUsers",
			[]string{*q.Limit, *q.CurrentPage, sortField, sortType}, err)
	}
	if len(users) == 0 {
		return nil, apierr.NoData(*q.Limit, *q.CurrentPage, *q.SortField, *q.SortType)
	}

	return &domain.UserPage{
		Users: users,
		PageInfo: domain.PageInfo{
			Limit:        limit,
			CurrentPage:  currentPage,
			TotalRecords: totalRecords,
			TotalPages:   totalPages,
		},
	}, nil
}

// UserDetail returns one user with its role assignments collapsed into a
// single record. The caller is re-validated against the live directory but
// no role is required; any active account may look up any user.
func (s *UserService) UserDetail(ctx context.Context, callerID, userID string) (*domain.UserDetail, error) {
	if userID == "" {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeMissingPathParam,
			"The userId does not exist.")
	}

	if _, err := s.Directory.ResolveActive(ctx, callerID); err != nil {
		return nil, err
	}

	rows, err := s.Store.Users().ListUserDetail(ctx, userID)
	if err != nil {
		return nil, apierr.Repository(apierr.CodeQueryUserDetail,
			"ListUserDetail", []string{userID}, err)
	}
	if len(rows) == 0 {
		return nil, apierr.NoData(userID)
	}

	detail := &domain.UserDetail{
		FirstName:  rows[0].FirstName,
		LastName:   rows[0].LastName,
		Age:        rows[0].Age,
		Address:    rows[0].Address,
		IsVerified: rows[0].IsVerified,
		Roles:      make([]domain.RoleRef, 0, len(rows)),
	}
	for _, row := range rows {
		detail.Roles = append(detail.Roles, domain.RoleRef{
			RoleID:   row.RoleID,
			RoleName: row.RoleName,
		})
	}
	return detail, nil
}

func parseInteger(raw string) (int, bool) {
	if !integerPattern.MatchString(raw) {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func hasRole(roles []domain.RoleRef, roleID string) bool {
	for _, r := range roles {
		if r.RoleID == roleID {
			return true
		}
	}
	return false
}
