package util

import "errors"

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyEnrolled  = errors.New("already enrolled in this course")
	ErrNotEnrolled      = errors.New("not enrolled in this course")
	ErrLectureLocked    = errors.New("previous lectures must be completed first")
	ErrQuizWindowClosed = errors.New("quiz is not open for submissions")
	ErrInvalidInput     = errors.New("invalid input")
)
