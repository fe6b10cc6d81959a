package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/oapi-codegen/nullable"
	"go.uber.org/zap"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/usercache"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/userrepo"
)

type Service struct {
	repo  userrepo.Repository
	cache usercache.Cache
	log   *zap.Logger
}

func NewService(repo userrepo.Repository, cache usercache.Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log.Named("users"),
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	us, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(us))
	for _, u := range us {
		out = append(out, toDomain(u))
	}
	return out, nil
}

// GetUser reads from the store only; the cache is a write-through mirror and
// is never consulted. It returns nil when the user does not exist.
func (s *Service) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	d := toDomain(u)
	return &d, nil
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (MutationResult, error) {
	u, err := s.repo.Insert(ctx, userrepo.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Website:  in.Website,
	})
	if err != nil {
		return MutationResult{}, err
	}
	d := toDomain(u)
	return MutationResult{
		User:        &d,
		SideEffects: []domain.SideEffect{s.mirror(ctx, d)},
	}, nil
}

// UpdateUser applies only the specified fields. A missing user yields a nil
// User and no cache write.
func (s *Service) UpdateUser(ctx context.Context, id domain.UserID, in UpdateUserInput) (MutationResult, error) {
	var patch userrepo.Patch
	details := map[string]any{}
	patch.Name = patchValue(in.Name, "name", details)
	patch.Email = patchValue(in.Email, "email", details)
	patch.Phone = patchValue(in.Phone, "phone", details)
	patch.Website = patchValue(in.Website, "website", details)
	if len(details) > 0 {
		return MutationResult{}, &Error{
			Code:    "VALIDATION_ERROR",
			Message: "invalid user patch",
			Details: details,
		}
	}

	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return MutationResult{}, nil
		}
		return MutationResult{}, err
	}
	d := toDomain(u)
	return MutationResult{
		User:        &d,
		SideEffects: []domain.SideEffect{s.mirror(ctx, d)},
	}, nil
}

// DeleteUser is idempotent: the confirmation is returned whether or not the row existed.
func (s *Service) DeleteUser(ctx context.Context, id domain.UserID) (DeleteResult, error) {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}
	if !existed {
		s.log.Debug("delete of absent user", zap.String("id", string(id)))
	}

	key := usercache.Key(id)
	effect := domain.SideEffect{Kind: domain.SideEffectCacheDelete, Key: key}
	if err := s.cache.Delete(ctx, id); err != nil {
		effect.Err = err
		s.log.Warn("user cache delete failed", zap.String("key", key), zap.Error(err))
	}

	return DeleteResult{
		Message:     fmt.Sprintf("User with ID %s deleted successfully", id),
		Existed:     existed,
		SideEffects: []domain.SideEffect{effect},
	}, nil
}

// mirror writes u to the cache. Failure is logged and reported, never returned.
func (s *Service) mirror(ctx context.Context, u domain.User) domain.SideEffect {
	key := usercache.Key(u.ID)
	effect := domain.SideEffect{Kind: domain.SideEffectCacheSet, Key: key}
	if err := s.cache.Set(ctx, u); err != nil {
		effect.Err = err
		s.log.Warn("user cache write failed", zap.String("key", key), zap.Error(err))
	}
	return effect
}

// --- helpers ---

func patchValue(n nullable.Nullable[string], field string, details map[string]any) *string {
	if !n.IsSpecified() {
		return nil
	}
	if n.IsNull() {
		details[field] = "must not be null"
		return nil
	}
	v := n.MustGet()
	return &v
}

func toDomain(u userrepo.User) domain.User {
	return domain.User{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Website:  u.Website,
	}
}
