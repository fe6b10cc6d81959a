package users

import (
	"github.com/oapi-codegen/nullable"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
)

type CreateUserInput struct {
	Name     string
	Username string
	Email    string
	Phone    string
	Website  string
}

// UpdateUserInput is a partial patch. Unspecified fields keep their stored
// value. Null is rejected because every column is required.
// Username is immutable and deliberately absent.
type UpdateUserInput struct {
	Name    nullable.Nullable[string]
	Email   nullable.Nullable[string]
	Phone   nullable.Nullable[string]
	Website nullable.Nullable[string]
}

// MutationResult is the primary outcome of a user write plus the best-effort
// cache side effects that followed it. User is nil when the target did not exist.
type MutationResult struct {
	User        *domain.User
	SideEffects []domain.SideEffect
}

// DeleteResult is returned by DeleteUser. Existed reports whether a row was removed.
type DeleteResult struct {
	Message     string
	Existed     bool
	SideEffects []domain.SideEffect
}
