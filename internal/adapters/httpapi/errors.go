package httpapi

import (
	"context"
	"errors"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Overland-East-Bay/trip-gateway/internal/app/trips"
	"github.com/Overland-East-Bay/trip-gateway/internal/app/users"
)

const codeBackendError = "BACKEND_ERROR"

// fieldError is returned from resolvers. graphql-go copies Extensions into the
// error entry of the response.
type fieldError struct {
	code    string
	message string
	details map[string]any
}

func (e *fieldError) Error() string { return e.message }

func (e *fieldError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if len(e.details) > 0 {
		ext["details"] = e.details
	}
	return ext
}

// toFieldError maps an app or backend error onto the GraphQL error channel.
// Only backend errors are logged; app errors are expected client outcomes.
func (r *Resolver) toFieldError(ctx context.Context, field string, err error) error {
	var ue *users.Error
	if errors.As(err, &ue) {
		return &fieldError{code: ue.Code, message: ue.Error(), details: ue.Details}
	}
	var te *trips.Error
	if errors.As(err, &te) {
		return &fieldError{code: te.Code, message: te.Error(), details: te.Details}
	}

	r.log.Error("resolver backend failure",
		zap.String("field", field),
		zap.String("request_id", middleware.GetReqID(ctx)),
		zap.Error(err),
	)
	return &fieldError{code: codeBackendError, message: err.Error()}
}
