package documents

import "time"

// Access is the closed set of document access levels.
type Access string

const (
	AccessPrivate Access = "private"
	AccessPublic  Access = "public"
	AccessRole    Access = "role"
)

// Valid reports whether a is a defined access level.
func (a Access) Valid() bool {
	switch a {
	case AccessPrivate, AccessPublic, AccessRole:
		return true
	}
	return false
}

// Document is an owned content record. OwnerID is set at creation and is
// immutable; there is no transfer-of-ownership operation.
type Document struct {
	ID        string
	Title     string
	Content   string
	Access    Access
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
