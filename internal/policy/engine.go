package policy

import (
	"go-gym/internal/identity"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

// The matcher is a plain (role, resource, action) lookup; "*" grants
// every action on a resource. The policy set is built from the matrix
// below at startup and is read-only afterward, so evaluation is a pure
// in-memory check with no store access.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && (p.act == "*" || r.act == p.act)
`

type matrixEntry struct {
	role     identity.Role
	resource Resource
	action   Action
}

const actionAll Action = "*"

// roleActionMatrix is the single authoritative permission table.
// Superadmin is handled before the matrix and deliberately absent.
func roleActionMatrix() []matrixEntry {
	var entries []matrixEntry

	// Admin: full CRUD on every branch-scoped resource within their
	// own branch (the branch check runs before the matrix).
	for _, res := range Resources() {
		entries = append(entries, matrixEntry{identity.RoleAdmin, res, actionAll})
	}

	// Trainers: read-only, plus QR scan toggling on the floor.
	for _, role := range []identity.Role{identity.RoleGeneralTrainer, identity.RolePersonalTrainer} {
		for _, res := range Resources() {
			entries = append(entries, matrixEntry{role, res, ActionRead})
		}
		entries = append(entries, matrixEntry{role, ResourceAttendance, ActionScan})
	}

	// Receptionist: read everywhere, and operates the front desk:
	// manual check-in/out and QR scanning.
	for _, res := range Resources() {
		entries = append(entries, matrixEntry{identity.RoleReceptionist, res, ActionRead})
	}
	entries = append(entries,
		matrixEntry{identity.RoleReceptionist, ResourceAttendance, ActionCreate},
		matrixEntry{identity.RoleReceptionist, ResourceAttendance, ActionUpdate},
		matrixEntry{identity.RoleReceptionist, ResourceAttendance, ActionScan},
	)

	// Housekeeping: schedule visibility only.
	entries = append(entries,
		matrixEntry{identity.RoleHousekeeping, ResourceAttendance, ActionRead},
		matrixEntry{identity.RoleHousekeeping, ResourceClass, ActionRead},
	)

	// Member: reads own records (SelfOnly is set on the decision) and
	// may create/cancel own bookings.
	for _, res := range []Resource{
		ResourceAttendance, ResourceMember, ResourcePlan, ResourceClass,
		ResourceBooking, ResourceInvoice, ResourcePayment,
	} {
		entries = append(entries, matrixEntry{identity.RoleMember, res, ActionRead})
	}
	entries = append(entries,
		matrixEntry{identity.RoleMember, ResourceBooking, ActionCreate},
		matrixEntry{identity.RoleMember, ResourceBooking, ActionDelete},
	)

	return entries
}

// Engine evaluates authorization decisions. It is safe for concurrent
// use: the enforcer is never mutated after NewEngine returns.
type Engine struct {
	enforcer *casbin.Enforcer
}

func NewEngine() (*Engine, error) {
	m, err := casbinmodel.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, e := range roleActionMatrix() {
		if _, err := enforcer.AddPolicy(e.role.String(), string(e.resource), string(e.action)); err != nil {
			return nil, err
		}
	}

	return &Engine{enforcer: enforcer}, nil
}

// branchIndependent reports resource/action pairs exempt from branch
// affiliation: only the global plan catalog read.
func branchIndependent(res Resource, act Action) bool {
	return res == ResourcePlan && act == ActionRead
}

// Authorize decides whether the principal may perform action on
// resource, optionally targeting a specific branch. Precedence:
// superadmin bypass, branch isolation, then the role-action matrix.
func (e *Engine) Authorize(p identity.Principal, res Resource, act Action, requestedBranchID string) Decision {
	if p.IsSuperAdmin() {
		return Decision{Allowed: true}
	}

	if p.BranchID == "" {
		if !branchIndependent(res, act) {
			return Decision{Reason: ReasonBranchIsolation}
		}
	} else if requestedBranchID != "" && requestedBranchID != p.BranchID {
		return Decision{Reason: ReasonBranchIsolation}
	}

	allowed, err := e.enforcer.Enforce(p.Role.String(), string(res), string(act))
	if err != nil || !allowed {
		return Decision{Reason: ReasonInsufficientPermission}
	}

	d := Decision{
		Allowed:      true,
		BranchFilter: p.BranchID,
	}
	if p.Role == identity.RoleMember {
		d.SelfOnly = true
	}
	return d
}

// RolePermissions lists the matrix entries granted to a role, for the
// role administration endpoints.
func (e *Engine) RolePermissions(role identity.Role) [][2]string {
	policies, err := e.enforcer.GetFilteredPolicy(0, role.String())
	if err != nil {
		return nil
	}
	perms := make([][2]string, 0, len(policies))
	for _, p := range policies {
		perms = append(perms, [2]string{p[1], p[2]})
	}
	return perms
}
