package employee

import (
	"time"
)

// Employee is a directory record. EmployeeID is immutable once created and
// records are never updated in place, only created or deleted.
type Employee struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
	CreatedAt  *time.Time
}
