package policy

// Resource is a protected resource kind. Handlers authorize against
// these constants, never against route paths.
type Resource string

const (
	ResourceAttendance Resource = "attendance"
	ResourceMember     Resource = "member"
	ResourceStaff      Resource = "staff"
	ResourceBranch     Resource = "branch"
	ResourcePlan       Resource = "plan"
	ResourceClass      Resource = "class"
	ResourceBooking    Resource = "booking"
	ResourcePayment    Resource = "payment"
	ResourceInvoice    Resource = "invoice"
	ResourceSalary     Resource = "salary"
	ResourceRole       Resource = "role"
)

// Action is a request verb in the role-action matrix. Scan is separate
// from create: trainers may toggle attendance via QR but not record
// manual check-ins.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionScan   Action = "scan"
)

func Resources() []Resource {
	return []Resource{
		ResourceAttendance,
		ResourceMember,
		ResourceStaff,
		ResourceBranch,
		ResourcePlan,
		ResourceClass,
		ResourceBooking,
		ResourcePayment,
		ResourceInvoice,
		ResourceSalary,
		ResourceRole,
	}
}

func Actions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionScan}
}

// Denial reasons. BranchIsolation covers cross-branch access and
// missing branch affiliation; InsufficientPermission covers
// role-action matrix violations.
const (
	ReasonBranchIsolation        = "BRANCH_ISOLATION_VIOLATION"
	ReasonInsufficientPermission = "INSUFFICIENT_PERMISSION"
)

// Decision is the transient outcome of one authorization check.
// BranchFilter empty means unrestricted; callers must apply a
// non-empty filter to every subsequent query. SelfOnly means the
// requested subject id must equal the principal's own id.
type Decision struct {
	Allowed      bool
	BranchFilter string
	SelfOnly     bool
	Reason       string
}

// EffectiveBranch resolves the branch a query must be scoped to:
// the decision's filter when restricted, otherwise whatever branch
// the caller asked for (superadmin may ask for any, or none).
func (d Decision) EffectiveBranch(requested string) string {
	if d.BranchFilter != "" {
		return d.BranchFilter
	}
	return requested
}
