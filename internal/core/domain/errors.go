package domain

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNotAuthenticated = errors.New("not authenticated")
)
