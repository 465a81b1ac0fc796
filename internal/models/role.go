package models

// Role identifies the kind of account behind a request. Handlers must never
// branch on raw strings; use the predicates below so a new role cannot fall
// through silently.
type Role string

const (
	RoleCliente     Role = "cliente"
	RoleColaborador Role = "colaborador"
	RoleAdmin       Role = "admin"
	RoleSuperAdmin  Role = "superadmin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCliente, RoleColaborador, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdministrative reports whether r may perform back-office operations
// (game configuration, result ingestion, prize distribution).
func (r Role) IsAdministrative() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	case RoleCliente, RoleColaborador:
		return false
	}
	return false
}

// CanIngestResults reports whether r may submit a draw result.
// Collaborators are allowed for games they are tied to; the service layer
// enforces that association.
func (r Role) CanIngestResults() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleColaborador:
		return true
	case RoleCliente:
		return false
	}
	return false
}
