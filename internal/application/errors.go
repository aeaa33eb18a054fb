package application

import "net/http"

// Error codes surfaced in the API error body.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeMemberNotExist       = "MEMBER_NOT_EXIST"
	CodePatientNotExist      = "PATIENT_NOT_EXIST"
	CodeCaregiverNotExist    = "CAREGIVER_NOT_EXIST"
	CodePostNotFound         = "POST_NOT_FOUND"
	CodeProfileAlreadyExists = "PROFILE_ALREADY_EXISTS"
	CodeDuplicateRRN         = "DUPLICATED_RESIDENT_REGISTRATION_NUMBER"
	CodeUsernameTaken        = "USERNAME_ALREADY_EXISTS"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeInvalidRRN           = "INVALID_RESIDENT_REGISTRATION_NUMBER"
	CodeStorageNotConfigured = "STORAGE_NOT_CONFIGURED"
	CodeNotInMatchList       = "NOT_IN_MATCH_LIST"
)

// Error is the typed domain error services raise. Handlers translate it
// to an HTTP status and structured body; services never suppress it.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

func notFound(code, message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: message}
}

func conflict(code, message string) *Error {
	return &Error{Status: http.StatusConflict, Code: code, Message: message}
}

func badRequest(code, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message}
}

func unauthorized(code, message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: code, Message: message}
}
