package coaching

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type AccessCode string

const (
	CodeTrainerOnly    AccessCode = "TRAINER_ONLY"
	CodeClientNotFound AccessCode = "CLIENT_NOT_FOUND"
	CodeForbidden      AccessCode = "FORBIDDEN"
)

// AccessError is returned by trainer operations the caller may not perform.
type AccessError struct {
	Code AccessCode
}

func (e *AccessError) Error() string {
	return strings.ToLower(string(e.Code))
}

func (e *AccessError) HTTPStatus() int {
	if e.Code == CodeClientNotFound {
		return http.StatusNotFound
	}
	return http.StatusForbidden
}

func IsAccessError(err error, code AccessCode) bool {
	var accessErr *AccessError
	return errors.As(err, &accessErr) && accessErr.Code == code
}

// EnsureTrainer loads the user and checks the stored role is trainer.
func (s *Service) EnsureTrainer(ctx context.Context, userID int64) (*User, error) {
	user, err := s.store.UserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, &AccessError{Code: CodeTrainerOnly}
	}
	if err != nil {
		return nil, fmt.Errorf("find trainer: %w", err)
	}
	if user.Role != RoleTrainer {
		return nil, &AccessError{Code: CodeTrainerOnly}
	}
	return user, nil
}

// AssertTrainerAccess returns the client when the trainer may act on it.
// Clients without a trainer are open to every trainer.
func (s *Service) AssertTrainerAccess(ctx context.Context, trainerID, clientID int64) (*User, error) {
	trainer, err := s.EnsureTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	client, err := s.store.UserByID(ctx, clientID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, &AccessError{Code: CodeClientNotFound}
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	if client.Role != RoleUser {
		return nil, &AccessError{Code: CodeClientNotFound}
	}
	if client.TrainerID != nil && *client.TrainerID != trainer.ID {
		return nil, &AccessError{Code: CodeForbidden}
	}
	return client, nil
}
