package service

import "errors"

// Client-caused failures. Each is detected before anything is written.
var (
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidPhone      = errors.New("invalid contact number: must contain 7 to 15 digits")
	ErrInvalidDob        = errors.New("invalid dob")
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidExperience = errors.New("experience must be zero or greater")
	ErrMissingFilename   = errors.New("resume filename is required")
	ErrInvalidFileType   = errors.New("invalid file type")
	ErrReaderNil         = errors.New("resume file is required")
	ErrUnreadableFile    = errors.New("cannot read uploaded file")
	ErrFileTooLarge      = errors.New("file too large")
)

var (
	ErrNotFound = errors.New("candidate not found")
	ErrStorage  = errors.New("failed to store resume")
)

var validationErrors = []error{
	ErrInvalidEmail,
	ErrInvalidPhone,
	ErrInvalidDob,
	ErrMissingField,
	ErrInvalidExperience,
	ErrMissingFilename,
	ErrInvalidFileType,
	ErrReaderNil,
	ErrUnreadableFile,
	ErrFileTooLarge,
}

// IsValidation reports whether err was caused by bad client input.
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
