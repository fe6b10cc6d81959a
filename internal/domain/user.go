package domain

// User is the domain representation of a user record.
type User struct {
	ID       UserID
	Name     string
	Username string
	Email    string
	Phone    string
	Website  string
}
