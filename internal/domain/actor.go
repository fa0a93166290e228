package domain

// Actor identifies who triggered a ledger operation.
type Actor struct {
	ID   string
	Name string
}

// SystemActor attributes changes made without a human operator, e.g. batch
// repair jobs.
var SystemActor = Actor{ID: "system", Name: "System"}

// OrSystem returns the actor itself, or SystemActor when empty.
func (a Actor) OrSystem() Actor {
	if a.ID == "" {
		return SystemActor
	}

	return a
}
