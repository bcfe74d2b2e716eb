package reservation

// Status is the reservation lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the reservation can no longer take payments.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// Category is the bookable resource class; time ranges must not overlap
// within a category.
type Category string

const (
	CategoryFutbol Category = "futbol"
	CategoryVoley  Category = "voley"
)

func (c Category) IsValid() bool {
	return c == CategoryFutbol || c == CategoryVoley
}

func (c Category) Label() string {
	switch c {
	case CategoryFutbol:
		return "Futbol"
	case CategoryVoley:
		return "Voley"
	default:
		return string(c)
	}
}
