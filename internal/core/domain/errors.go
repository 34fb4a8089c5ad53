package domain

import "errors"

var (
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTutorialNotFound   = errors.New("tutorial not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidInput       = errors.New("invalid input")
)
