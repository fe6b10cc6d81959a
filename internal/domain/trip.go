package domain

// Trip is the domain representation of a trip document.
// StartDate and EndDate are opaque strings; no date format is enforced.
type Trip struct {
	ID          TripID
	Destination string
	StartDate   string
	EndDate     string
}
