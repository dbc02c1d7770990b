package rbac

import "go-hrms/internal/domain"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

const (
	ResourceEmployee   = "employee"
	ResourceDepartment = "department"
	ResourceSalary     = "salary"
	ResourceLeave      = "leave"
	ResourceProfile    = "profile"
)

const (
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	// ActionList covers reads across every owner's records.
	ActionList = "list"
)

// permissionTable is the required-role set of every protected operation.
// Reads that an employee is allowed are additionally scoped to their own
// records by the owning service.
var permissionTable = map[string]map[string][]string{
	ResourceEmployee: {
		ActionCreate: {domain.RoleAdmin},
		ActionRead:   {domain.RoleAdmin, domain.RoleEmployee},
		ActionList:   {domain.RoleAdmin},
		ActionUpdate: {domain.RoleAdmin},
		ActionDelete: {domain.RoleAdmin},
	},
	ResourceDepartment: {
		ActionCreate: {domain.RoleAdmin},
		ActionRead:   {domain.RoleAdmin},
		ActionUpdate: {domain.RoleAdmin},
		ActionDelete: {domain.RoleAdmin},
	},
	ResourceSalary: {
		ActionCreate: {domain.RoleAdmin},
		ActionRead:   {domain.RoleAdmin, domain.RoleEmployee},
	},
	ResourceLeave: {
		ActionCreate:  {domain.RoleEmployee},
		ActionRead:    {domain.RoleAdmin, domain.RoleEmployee},
		ActionList:    {domain.RoleAdmin},
		ActionApprove: {domain.RoleAdmin},
	},
	ResourceProfile: {
		ActionRead:   {domain.RoleAdmin, domain.RoleEmployee},
		ActionUpdate: {domain.RoleAdmin, domain.RoleEmployee},
	},
}

type staticRepository struct{}

// NewStaticRepository serves the built-in permission table.
func NewStaticRepository() Repository {
	return staticRepository{}
}

func (staticRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	rows := make([]RolePermissionRow, 0, 32)
	for resource, actions := range permissionTable {
		for action, roles := range actions {
			for _, role := range roles {
				rows = append(rows, RolePermissionRow{Role: role, Resource: resource, Action: action})
			}
		}
	}
	return rows, nil
}
