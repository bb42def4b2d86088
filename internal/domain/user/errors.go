package user

import "errors"

// User domain errors
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameTaken          = errors.New("username is already taken")
	ErrEmployeeCodeTaken      = errors.New("employee code already exists")
	ErrAdminAccessRequired    = errors.New("admin privilege required")
	ErrReviewerAccessRequired = errors.New("only ADMIN or HR can perform this action")
)
