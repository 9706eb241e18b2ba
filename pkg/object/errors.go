package object

import "errors"

// Definition-time errors. These abort the definition before the entity
// becomes usable.
var (
	ErrInvalidName             = errors.New("invalid entity name")
	ErrEntityExists            = errors.New("entity already registered")
	ErrNotClass                = errors.New("entity is not a class")
	ErrNotInterface            = errors.New("entity is not an interface")
	ErrProtectedEntity         = errors.New("entity is protected")
	ErrInterfaceConflict       = errors.New("interfaces declare conflicting names")
	ErrInterfaceNotImplemented = errors.New("interface member not implemented")
	ErrMissingBody             = errors.New("class function requires a body")
	ErrArityMismatch           = errors.New("wrong number of type arguments")
)

// Call-time errors. These abort the single call in progress and leave
// registry and instance state untouched.
var (
	ErrUndefinedFunction = errors.New("undefined function")
	ErrMissingProperty   = errors.New("declared property not assigned")
	ErrAlreadyDestroyed  = errors.New("instance already destroyed")
	ErrNotAttribute      = errors.New("instance does not implement IAttribute")
)
