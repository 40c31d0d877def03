package models

// Role is a fixed, totally ordered set of access levels.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleHRAdmin      Role = "hr_admin"
	RoleProjectAdmin Role = "project_admin"
	RoleTeamLead     Role = "team_lead"
	RoleEmployee     Role = "employee"
	RoleContractor   Role = "contractor"
	RoleGuest        Role = "guest"
)

// roleRank defines the total order over roles. A role missing from the
// table ranks below every valid role.
var roleRank = map[Role]int{
	RoleSuperAdmin:   100,
	RoleHRAdmin:      80,
	RoleProjectAdmin: 70,
	RoleTeamLead:     60,
	RoleEmployee:     40,
	RoleContractor:   30,
	RoleGuest:        10,
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank returns the numeric rank of the role, 0 for unknown roles.
func (r Role) Rank() int {
	return roleRank[r]
}

// HasMinimumRole reports whether actual ranks at least as high as minimum.
func HasMinimumRole(actual, minimum Role) bool {
	return roleRank[actual] >= roleRank[minimum]
}

// CanManage reports whether a manager role may act on a target role.
// The order is strict: a role never manages a peer of equal rank.
func CanManage(manager, target Role) bool {
	return roleRank[manager] > roleRank[target]
}

// AllRoles lists every defined role, highest rank first.
func AllRoles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleHRAdmin,
		RoleProjectAdmin,
		RoleTeamLead,
		RoleEmployee,
		RoleContractor,
		RoleGuest,
	}
}
