package model

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Principal is the caller resolved from an access token.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsOperator() bool {
	return p.Role == RoleOperator
}

// CanManagePlates reports whether the principal may replace or clear the
// plate collection.
func (p Principal) CanManagePlates() bool {
	return p.IsAdmin() || p.IsOperator()
}
