// Package policy decides which soft-delete view an actor may read and which
// privileged or owner-only operations it may perform.
package policy

import "errors"

// ErrForbidden is returned for every denied decision. Callers surface it as a
// generic 403.
var ErrForbidden = errors.New("you do not have permission to perform this action")

// Actor is the verified identity handed over by the auth middleware.
type Actor struct {
	UserID      uint
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
	StudentID   *uint
	TeacherID   *uint
}

// Elevated reports whether the actor is a superuser or admin.
func (a Actor) Elevated() bool {
	return a.IsSuperuser || a.IsStaff
}

func (a Actor) IsStudent() bool { return a.StudentID != nil }

func (a Actor) IsTeacher() bool { return a.TeacherID != nil }

// View selects one of the two disjoint soft-delete views of an entity set.
type View int

const (
	ViewActive View = iota
	ViewDeleted
)

func (v View) String() string {
	if v == ViewDeleted {
		return "deleted"
	}
	return "active"
}

// ResolveView maps (actor, show_deleted) to a view. Asking for deleted rows
// without an elevated role fails closed.
func ResolveView(actor Actor, showDeleted bool) (View, error) {
	if !showDeleted {
		return ViewActive, nil
	}
	if !actor.Elevated() {
		return ViewActive, ErrForbidden
	}
	return ViewDeleted, nil
}

func RequireElevated(actor Actor) error {
	if !actor.Elevated() {
		return ErrForbidden
	}
	return nil
}

// RequireOwner is the object-level check shared by every owner-scoped read
// and write. Elevated actors pass.
func RequireOwner(actor Actor, owned bool) error {
	if owned || actor.Elevated() {
		return nil
	}
	return ErrForbidden
}
