package services

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound   = errors.New("booking_not_found")
	ErrRoomNotFound      = errors.New("room_not_found")
	ErrRoomNotAvailable  = errors.New("room_not_available")
	ErrRoomOccupied      = errors.New("room_occupied")
	ErrDuplicateRoom     = errors.New("room_number_exists")
	ErrAlreadyCheckedOut = errors.New("already_checked_out")
	ErrDraftNotFound     = errors.New("draft_not_found")
	ErrHistoryNotFound   = errors.New("history_not_found")
	ErrInvalidCredential = errors.New("invalid_credentials")
	ErrInvalidToken      = errors.New("invalid_token")
)

// ValidationError rejects operator input before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err came from input validation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
