package domain

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

// Actor is the authenticated caller as seen by the services.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccessOwn reports whether the actor may touch a record owned by ownerUserID.
// Admins may touch every record; everybody else only their own.
func (a Actor) CanAccessOwn(ownerUserID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.UserID != "" && a.UserID == ownerUserID
}
