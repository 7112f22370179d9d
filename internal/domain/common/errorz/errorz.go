package errorz

import "errors"

var (
	Unauthenticated      = errors.New("unauthenticated")
	Forbidden            = errors.New("forbidden")
	NotProvisioned       = errors.New("society account is not linked to a society")
	NotFound             = errors.New("not found")
	InvalidCredentials   = errors.New("invalid credentials")
	RoleMismatch         = errors.New("account role does not match")
	DuplicateUsername    = errors.New("username is already taken")
	DuplicateEmail       = errors.New("email is already registered")
	DuplicateName        = errors.New("society name is already taken")
	AlreadyLinked        = errors.New("account is already linked to another society")
	InvalidTransition    = errors.New("event has already been decided")
	EventNotApproved     = errors.New("event is not open for registration")
	DepartmentNotAllowed = errors.New("event is not open to this department")
	AlreadyRegistered    = errors.New("already registered for this event")
	NotRegistered        = errors.New("no registration for this event")
)
