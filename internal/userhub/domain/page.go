package domain

// PageInfo describes the slice of the listing a response covers.
type PageInfo struct {
	Limit        int `json:"limit"`
	CurrentPage  int `json:"currentPage"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
}

// UserPage is the user listing response body.
type UserPage struct {
	Users    []UserRow `json:"users"`
	PageInfo PageInfo  `json:"pageInfo"`
}
