package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("user is blocked")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrLastManager        = errors.New("team must keep at least one manager")
	ErrNotParticipant     = errors.New("user is not a team participant")
	ErrNotTeamTask        = errors.New("task does not belong to a team list")
	ErrTaskCompleted      = errors.New("task is completed")
)
