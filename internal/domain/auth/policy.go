package auth

import "fmt"

// Resource names an entity exposed through the API.
type Resource string

const (
	ResourceUsers     Resource = "users"
	ResourceSalaries  Resource = "salaries"
	ResourceChantiers Resource = "chantiers"
)

// Verb names an operation on a Resource.
type Verb string

const (
	VerbList          Verb = "list"
	VerbGet           Verb = "get"
	VerbCreate        Verb = "create"
	VerbUpdate        Verb = "update"
	VerbDelete        Verb = "delete"
	VerbSetActive     Verb = "set-active"
	VerbSetRole       Verb = "set-role"
	VerbResetPassword Verb = "reset-password"
)

// Policy is the allow-list for one resource operation. Policies are declared
// per operation on purpose: create and delete on the same resource may differ.
type Policy struct {
	Resource Resource
	Verb     Verb
	Roles    RoleSet
}

// Allows reports whether role may perform the operation.
func (p Policy) Allows(role Role) bool { return HasAccess(role, p.Roles) }

func (p Policy) String() string { return fmt.Sprintf("%s:%s", p.Resource, p.Verb) }

// PolicyFor returns the policy of an operation. ok is false when the
// operation is not declared.
func PolicyFor(res Resource, verb Verb) (p Policy, ok bool) {
	roles := policyRoles(res, verb)
	if roles.Empty() {
		return Policy{}, false
	}
	return Policy{Resource: res, Verb: verb, Roles: roles}, true
}

func mustPolicy(res Resource, verb Verb) Policy {
	p, ok := PolicyFor(res, verb)
	if !ok {
		panic(fmt.Sprintf("undeclared policy %s:%s", res, verb)) //nolint:forbidigo // Fail fast during server setup.
	}
	return p
}

// policyRoles is the per-operation allow-list. An empty set means undeclared.
func policyRoles(res Resource, verb Verb) RoleSet {
	switch res {
	case ResourceUsers:
		switch verb {
		case VerbList, VerbGet, VerbCreate, VerbUpdate, VerbSetActive:
			return NewRoleSet(RoleCAFF, RoleAdmin)
		case VerbSetRole, VerbResetPassword:
			return NewRoleSet(RoleAdmin)
		}
	case ResourceSalaries:
		switch verb {
		case VerbList, VerbGet:
			return NewRoleSet(RolePrepa, RoleCE, RoleRDC, RoleCAFF, RoleRH, RoleAdmin)
		case VerbCreate, VerbUpdate:
			return NewRoleSet(RoleRH, RoleCAFF, RoleAdmin)
		case VerbDelete:
			return NewRoleSet(RoleAdmin)
		}
	case ResourceChantiers:
		switch verb {
		case VerbList, VerbGet:
			return NewRoleSet(RolePrepa, RoleCE, RoleRDC, RoleCAFF, RoleAutre, RoleAdmin)
		case VerbCreate:
			return NewRoleSet(RoleRDC, RoleCAFF, RoleAdmin)
		case VerbUpdate:
			return NewRoleSet(RolePrepa, RoleRDC, RoleCAFF, RoleAdmin)
		case VerbDelete:
			return NewRoleSet(RoleCAFF, RoleAdmin)
		}
	}
	return 0
}

func UsersList() Policy          { return mustPolicy(ResourceUsers, VerbList) }
func UsersGet() Policy           { return mustPolicy(ResourceUsers, VerbGet) }
func UsersCreate() Policy        { return mustPolicy(ResourceUsers, VerbCreate) }
func UsersUpdate() Policy        { return mustPolicy(ResourceUsers, VerbUpdate) }
func UsersSetActive() Policy     { return mustPolicy(ResourceUsers, VerbSetActive) }
func UsersSetRole() Policy       { return mustPolicy(ResourceUsers, VerbSetRole) }
func UsersResetPassword() Policy { return mustPolicy(ResourceUsers, VerbResetPassword) }

func SalariesList() Policy   { return mustPolicy(ResourceSalaries, VerbList) }
func SalariesGet() Policy    { return mustPolicy(ResourceSalaries, VerbGet) }
func SalariesCreate() Policy { return mustPolicy(ResourceSalaries, VerbCreate) }
func SalariesUpdate() Policy { return mustPolicy(ResourceSalaries, VerbUpdate) }
func SalariesDelete() Policy { return mustPolicy(ResourceSalaries, VerbDelete) }

func ChantiersList() Policy   { return mustPolicy(ResourceChantiers, VerbList) }
func ChantiersGet() Policy    { return mustPolicy(ResourceChantiers, VerbGet) }
func ChantiersCreate() Policy { return mustPolicy(ResourceChantiers, VerbCreate) }
func ChantiersUpdate() Policy { return mustPolicy(ResourceChantiers, VerbUpdate) }
func ChantiersDelete() Policy { return mustPolicy(ResourceChantiers, VerbDelete) }

// Policies returns every declared policy.
func Policies() []Policy {
	return []Policy{
		UsersList(), UsersGet(), UsersCreate(), UsersUpdate(), UsersSetActive(), UsersSetRole(), UsersResetPassword(),
		SalariesList(), SalariesGet(), SalariesCreate(), SalariesUpdate(), SalariesDelete(),
		ChantiersList(), ChantiersGet(), ChantiersCreate(), ChantiersUpdate(), ChantiersDelete(),
	}
}

// CanAssignRole reports whether actor may give role to an account, at creation
// or through a role change. Only roles allowed to change roles may hand out ADMIN.
func CanAssignRole(actor, role Role) bool {
	if role == RoleAdmin {
		return UsersSetRole().Allows(actor)
	}
	return true
}
