package domain

import "fmt"

// Status is the stored lifecycle state of a campaign. Values match the
// numeric status returned by getStatus on the sale contracts.
type Status uint8

const (
	// StatusNew accepts purchases until the owner withdraws or cancels, or
	// the deadline passes.
	StatusNew Status = 1
	// StatusWithdrawn means the escrow was released to the owner.
	StatusWithdrawn Status = 2
	// StatusCancelled means purchasers may reclaim what they paid.
	StatusCancelled Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusWithdrawn:
		return "withdrawn"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusWithdrawn || s == StatusCancelled
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusNew, StatusWithdrawn, StatusCancelled:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown status %d", uint8(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "new":
		*s = StatusNew
	case "withdrawn":
		*s = StatusWithdrawn
	case "cancelled":
		*s = StatusCancelled
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}
