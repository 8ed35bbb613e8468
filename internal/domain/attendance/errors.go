package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidStatus     = errors.New("invalid attendance status")
	ErrInvalidTransition = errors.New("invalid attendance transition")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidDateRange  = errors.New("start_date must not be after end_date")
)
