package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fitcoach/backend/internal/audit"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/telemetry/metrics"
	"github.com/fitcoach/backend/internal/trainers"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeStore struct {
	users        map[int64]*coaching.User
	cleared      []int64
	deleted      []int64
	entries      []audit.Entry
	auditErr     error
	signupsSince time.Time
	userFilter   UserFilter
}

func newFakeStore(users ...coaching.User) *fakeStore {
	store := &fakeStore{users: make(map[int64]*coaching.User)}
	for _, u := range users {
		u := u
		store.users[u.ID] = &u
	}
	return store
}

func (f *fakeStore) AddAuditLog(_ context.Context, entry audit.Entry) error {
	if f.auditErr != nil {
		return f.auditErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeStore) PlatformStats(_ context.Context, signupsSince time.Time) (Stats, error) {
	f.signupsSince = signupsSince
	return Stats{Users: UserStats{Total: len(f.users)}}, nil
}

func (f *fakeStore) ListUsers(_ context.Context, filter UserFilter) ([]coaching.User, int, error) {
	f.userFilter = filter
	return nil, 0, nil
}

func (f *fakeStore) UserByID(_ context.Context, id int64) (*coaching.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, coaching.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) UpdateRole(_ context.Context, id int64, role coaching.Role) (*coaching.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, coaching.ErrUserNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id int64) error {
	delete(f.users, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) PendingTrainers(_ context.Context) ([]trainers.Trainer, error) {
	return nil, nil
}

func (f *fakeStore) ClearTrainerProfile(_ context.Context, userID int64) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

func (f *fakeStore) ListAuditLogs(_ context.Context, filter audit.Filter) ([]audit.Log, int, error) {
	return []audit.Log{{ID: 1, Action: string(audit.ActionAdminLogin)}}, 45, nil
}

var actor = Actor{AdminID: 1, IP: "203.0.113.9"}

func TestService_UpdateRole(t *testing.T) {
	store := newFakeStore(coaching.User{ID: 5, Role: coaching.RoleUser})
	metricsManager := metrics.NewTestManager()
	service := NewService(store, metricsManager)

	updated, err := service.UpdateRole(context.Background(), actor, 5, coaching.RoleTrainer)
	require.NoError(t, err)
	assert.Equal(t, coaching.RoleTrainer, updated.Role)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, audit.ActionRoleUpdate, entry.Action)
	assert.Equal(t, int64(1), entry.AdminID)
	assert.Equal(t, "203.0.113.9", entry.IP)
	assert.Equal(t, int64(5), *entry.TargetID)
	assert.Equal(t, map[string]any{"old_role": "user", "new_role": "trainer"}, entry.Details)
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterAdminActions.WithLabelValues("user.role.update")))
}

func TestService_UpdateRole_Invalid(t *testing.T) {
	store := newFakeStore(coaching.User{ID: 5, Role: coaching.RoleUser})
	service := NewService(store, nil)

	_, err := service.UpdateRole(context.Background(), actor, 5, "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = service.UpdateRole(context.Background(), actor, 6, coaching.RoleAdmin)
	assert.ErrorIs(t, err, coaching.ErrUserNotFound)
	assert.Empty(t, store.entries)
}

func TestService_DeleteUser(t *testing.T) {
	email := "old@fit.example"
	store := newFakeStore(coaching.User{ID: 5, Email: &email})
	service := NewService(store, nil)

	require.NoError(t, service.DeleteUser(context.Background(), actor, 5))
	assert.Equal(t, []int64{5}, store.deleted)
	require.Len(t, store.entries, 1)
	assert.Equal(t, audit.ActionUserDelete, store.entries[0].Action)
	assert.Equal(t, &email, store.entries[0].Details["email"])

	assert.ErrorIs(t, service.DeleteUser(context.Background(), actor, 5), coaching.ErrUserNotFound)
	assert.Len(t, store.deleted, 1)
}

func TestService_AuditFailureDoesNotFailMutation(t *testing.T) {
	store := newFakeStore(coaching.User{ID: 5})
	store.auditErr = errors.New("audit table locked")
	service := NewService(store, metrics.NewTestManager())

	require.NoError(t, service.DeleteUser(context.Background(), actor, 5))
	assert.Equal(t, []int64{5}, store.deleted)
}

func TestService_ReviewTrainer(t *testing.T) {
	store := newFakeStore(coaching.User{ID: 5, Role: coaching.RoleUser}, coaching.User{ID: 6, Role: coaching.RoleUser})
	service := NewService(store, nil)

	message, err := service.ReviewTrainer(context.Background(), actor, 5, true)
	require.NoError(t, err)
	assert.Equal(t, MessageTrainerApproved, message)
	assert.Equal(t, coaching.RoleTrainer, store.users[5].Role)

	message, err = service.ReviewTrainer(context.Background(), actor, 6, false)
	require.NoError(t, err)
	assert.Equal(t, MessageTrainerRejected, message)
	assert.Equal(t, coaching.RoleUser, store.users[6].Role)
	assert.Equal(t, []int64{6}, store.cleared)

	require.Len(t, store.entries, 2)
	assert.Equal(t, audit.ActionTrainerApprove, store.entries[0].Action)
	assert.Equal(t, audit.ActionTrainerReject, store.entries[1].Action)

	_, err = service.ReviewTrainer(context.Background(), actor, 99, true)
	assert.ErrorIs(t, err, coaching.ErrUserNotFound)
}

func TestService_Listings(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, nil)
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	_, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now.Add(-7*24*time.Hour), store.signupsSince)

	users, err := service.Users(context.Background(), UserFilter{Page: -1, Limit: 0, Role: coaching.RoleTrainer})
	require.NoError(t, err)
	assert.Equal(t, []coaching.User{}, users.Users)
	assert.Equal(t, UserFilter{Page: 0, Limit: 20, Role: coaching.RoleTrainer}, store.userFilter)

	logs, err := service.AuditLogs(context.Background(), audit.Filter{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, logs.Logs, 1)
	assert.Equal(t, 3, logs.Pagination.TotalPages)

	pending, err := service.PendingTrainers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
}
