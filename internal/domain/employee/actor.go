package employee

// Actor identifies who is invoking a workflow transition. Handlers build it
// from verified JWT claims, the services never read client-supplied role
// state.
type Actor struct {
	UserID     string
	EmployeeID *string
	Role       Role
}
