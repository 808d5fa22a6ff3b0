package models

import "errors"

// Error constants for directory operations
var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrInvalidProfileID  = errors.New("invalid profile ID")
	ErrEditTokenNotFound = errors.New("edit token not found")
	ErrDuplicateProfile  = errors.New("a profile with these details already exists")
	ErrPhotoUploadFailed = errors.New("photo upload failed")
)
