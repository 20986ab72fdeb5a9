package domain

import "errors"

var (
	ErrModNotFound     = errors.New("mod not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileReadonly = errors.New("profile is readonly")
	ErrNoInstallPath   = errors.New("install path not configured")
	ErrOutsideRoot     = errors.New("path is outside the known mod roots")
	ErrWorldConfig     = errors.New("world config unreadable")
)
