package domain

// AdminRoleID gates privileged operations; the user listing requires the
// caller's role set to contain it.
const AdminRoleID = "ADMIN"
