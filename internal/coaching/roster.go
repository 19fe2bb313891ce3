package coaching

import (
	"context"
	"fmt"

	"github.com/fitcoach/backend/internal/telemetry/tracing"
)

// RosterStrategy resolves the clients that belong to a trainer.
type RosterStrategy interface {
	Resolve(ctx context.Context, trainerID int64) ([]User, error)
}

// DirectRoster resolves clients through users.trainer_id.
type DirectRoster struct {
	store Store
}

func NewDirectRoster(store Store) *DirectRoster {
	return &DirectRoster{store: store}
}

func (d *DirectRoster) Resolve(ctx context.Context, trainerID int64) ([]User, error) {
	users, err := d.store.UsersByTrainer(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("users by trainer: %w", err)
	}
	return users, nil
}

// LegacyRoster resolves clients through the old client table, matching
// its telegram ids against users.
type LegacyRoster struct {
	store Store
}

func NewLegacyRoster(store Store) *LegacyRoster {
	return &LegacyRoster{store: store}
}

func (l *LegacyRoster) Resolve(ctx context.Context, trainerID int64) ([]User, error) {
	clients, err := l.store.LegacyClientsByTrainer(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("legacy clients by trainer: %w", err)
	}

	telegramIDs := make([]string, 0, len(clients))
	for _, c := range clients {
		if c.TelegramID != nil && *c.TelegramID != "" {
			telegramIDs = append(telegramIDs, *c.TelegramID)
		}
	}
	if len(telegramIDs) == 0 {
		return nil, nil
	}

	users, err := l.store.UsersByTelegramIDs(ctx, telegramIDs)
	if err != nil {
		return nil, fmt.Errorf("users by telegram ids: %w", err)
	}
	return users, nil
}

// MergedRoster runs its strategies in order and keeps the first occurrence
// of every user id.
type MergedRoster struct {
	strategies []RosterStrategy
}

func NewMergedRoster(strategies ...RosterStrategy) *MergedRoster {
	return &MergedRoster{strategies: strategies}
}

func (m *MergedRoster) Resolve(ctx context.Context, trainerID int64) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.roster")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	seen := make(map[int64]struct{})
	roster := make([]User, 0)
	for _, strategy := range m.strategies {
		users, err := strategy.Resolve(ctx, trainerID)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if _, ok := seen[u.ID]; ok {
				continue
			}
			seen[u.ID] = struct{}{}
			roster = append(roster, u)
		}
	}
	return roster, nil
}
