package store

import "errors"

// Error sentinel yang dipakai handler dan editor untuk memetakan
// kegagalan domain ke pesan/status yang tepat.
var (
	ErrDuplicateUser     = errors.New("username already exists")
	ErrUnknownUser       = errors.New("user does not exist")
	ErrBlankCredential   = errors.New("username and password must not be blank")
	ErrInvalidDateFormat = errors.New("invalid date format, use DD Mon YYYY")
	ErrTaskOutOfRange    = errors.New("task number out of range")
	ErrTaskCompleted     = errors.New("task is already completed and cannot be edited")
)
