package task

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskAccessDenied = errors.New("unauthorized to access this task")
)
