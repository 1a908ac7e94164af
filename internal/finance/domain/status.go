package domain

// Status is the two-state lifecycle flag shared by categories and
// expenses. The numeric values are part of the wire and storage
// contract: 1 is active, 0 is soft deleted.
type Status int

const (
	StatusSoftDeleted Status = 0
	StatusActive      Status = 1
)

func (s Status) Valid() bool {
	return s == StatusSoftDeleted || s == StatusActive
}

func (s Status) String() string {
	if s == StatusActive {
		return "active"
	}
	return "soft-deleted"
}
