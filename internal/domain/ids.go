package domain

// UserID identifies a user row. The relational store assigns it; we carry it
// as its decimal string form.
type UserID string

// TripID identifies a trip document (hex ObjectID in the document store).
type TripID string
