package domain

// UserSortFields are the sortField values the user listing accepts, compared
// case-insensitively. An empty sortField selects the default ordering by
// concatenated first+last name ascending.
var UserSortFields = []string{"FIRSTNAME", "LASTNAME", "AGE", "ADDRESS"}

// SortTypes are the accepted sortType values; empty falls back to ASC.
var SortTypes = []string{"ASC", "DESC", ""}

// PageLimits are the only page sizes the user listing accepts.
var PageLimits = []int{10, 20, 50, 100}
