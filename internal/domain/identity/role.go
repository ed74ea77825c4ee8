package identity

// Role represents a user role
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// IsValid returns true if the role is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Resource represents a protected resource category
type Resource string

const (
	ResourceSuppliers    Resource = "suppliers"
	ResourceCustomers    Resource = "customers"
	ResourceUsers        Resource = "users"
	ResourceSettings     Resource = "settings"
	ResourceReports      Resource = "reports"
	ResourceTransactions Resource = "transactions"
	ResourceBackup       Resource = "backup"
)

// Action represents an operation on a resource
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionManage gates irreversible administrative operations
	// (e.g. restoring a backup) separately from ordinary delete.
	ActionManage Action = "manage"
)

// permission describes which actions a role may perform on one resource
type permission struct {
	Create bool
	Read   bool
	Update bool
	Delete bool
	Manage bool
}

// allowed maps an action onto the permission flags
func (p permission) allowed(action Action) bool {
	switch action {
	case ActionCreate:
		return p.Create
	case ActionRead:
		return p.Read
	case ActionUpdate:
		return p.Update
	case ActionDelete:
		return p.Delete
	case ActionManage:
		return p.Manage
	}
	return false
}

var allActions = permission{Create: true, Read: true, Update: true, Delete: true, Manage: true}

// rolePermissions is the fixed policy table. It is not configurable at
// runtime; changing it is a code change.
var rolePermissions = map[Role]map[Resource]permission{
	RoleAdmin: {
		ResourceSuppliers:    allActions,
		ResourceCustomers:    allActions,
		ResourceUsers:        allActions,
		ResourceSettings:     allActions,
		ResourceReports:      allActions,
		ResourceTransactions: allActions,
		ResourceBackup:       allActions,
	},
	RoleEmployee: {
		ResourceSuppliers:    {Create: true, Read: true, Update: true},
		ResourceCustomers:    {Create: true, Read: true, Update: true},
		ResourceTransactions: {Create: true, Read: true, Update: true},
		ResourceSettings:     {Read: true},
		ResourceReports:      {Read: true},
		ResourceUsers:        {},
		ResourceBackup:       {},
	},
}

// HasPermission reports whether the role may perform the action on the
// resource. It is pure and total: unknown roles, resources or actions
// always yield false.
func HasPermission(role Role, resource Resource, action Action) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	p, ok := perms[resource]
	if !ok {
		return false
	}
	return p.allowed(action)
}

// CanManage reports whether the role holds the manage flag for the resource
func CanManage(role Role, resource Resource) bool {
	return HasPermission(role, resource, ActionManage)
}
