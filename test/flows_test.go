//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fitcoach/backend/internal/admin"
	"github.com/fitcoach/backend/internal/audit"
	"github.com/fitcoach/backend/internal/auth"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/pkg"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTelegramID() int64 {
	return int64(gofakeit.Number(100_000_000, 999_999_999))
}

func (s *IntegrationTestSuite) createAdmin(ctx context.Context, email, password string) {
	hash, err := pkg.HashPassword(password)
	s.Require().NoError(err)
	firstName := gofakeit.FirstName()
	_, err = s.Repo.CreateAdmin(ctx, auth.NewAdmin{
		Email:        email,
		PasswordHash: hash,
		FirstName:    &firstName,
	})
	s.Require().NoError(err)
}

func (s *IntegrationTestSuite) TestHealthAndFallback() {
	ctx := context.Background()
	t := s.T()

	status, body := s.do(ctx, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverEndpoint+"/clients/7?tab=food", nil)
	require.NoError(t, err)
	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://app.fitcoach.test/clients/7?tab=food", resp.Header.Get("Location"))

	status, body = s.do(ctx, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), "API not found")
}

func (s *IntegrationTestSuite) TestTelegramLogin_SelfServiceFlow() {
	ctx := context.Background()
	t := s.T()

	telegramID := newTelegramID()
	firstName := gofakeit.FirstName()
	login := s.telegramLogin(ctx, telegramID, firstName)
	assert.Equal(t, coaching.RoleUser, login.User.Role)
	require.NotNil(t, login.User.TelegramID)
	assert.Equal(t, fmt.Sprint(telegramID), *login.User.TelegramID)

	// a second launch reuses the same account
	again := s.telegramLogin(ctx, telegramID, firstName)
	assert.Equal(t, login.User.ID, again.User.ID)

	var me coaching.User
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, "/api/me", login.Token, nil, &me))
	assert.Equal(t, login.User.ID, me.ID)
	require.NotNil(t, me.FirstName)
	assert.Equal(t, firstName, *me.FirstName)

	today := time.Now().UTC().Format(time.DateOnly)
	var created coaching.CreatedResponse
	status := s.doJSON(ctx, http.MethodPost, "/api/tracking", login.Token,
		map[string]any{"date": today, "weight": "82.4", "body_fat": 18}, &created)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, created.Ok)
	assert.Positive(t, created.ID)

	status, _ = s.do(ctx, http.MethodPost, "/api/tracking", login.Token, map[string]any{"date": today})
	assert.Equal(t, http.StatusBadRequest, status)

	var history []coaching.WeightSample
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, "/api/tracking", login.Token, nil, &history))
	require.Len(t, history, 1)
	assert.Equal(t, today, history[0].Date)
	require.NotNil(t, history[0].Weight)
	assert.InDelta(t, 82.4, *history[0].Weight, 0.001)

	var ok coaching.OkResponse
	status = s.doJSON(ctx, http.MethodPost, "/api/nutrition", login.Token,
		map[string]any{"date": today, "calories": 1800, "protein": "120", "fat": 60, "carbs": 150}, &ok)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, ok.Ok)

	var planResp coaching.PlanEntryResponse
	status = s.doJSON(ctx, http.MethodPost, "/api/me/workout-plan", login.Token,
		map[string]any{"day": 1, "title": "Upper body"}, &planResp)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, planResp.Entry)
	assert.Equal(t, "Upper body", planResp.Entry.Title)

	var plan []coaching.WorkoutPlanEntry
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, "/api/me/workout-plan", login.Token, nil, &plan))
	require.Len(t, plan, 1)

	var goal coaching.GoalWeightResponse
	status = s.doJSON(ctx, http.MethodPost, "/api/me/goal-weight", login.Token,
		map[string]any{"goalWeight": 78}, &goal)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, goal.GoalWeight)
	assert.Equal(t, 78.0, *goal.GoalWeight)

	status, body := s.do(ctx, http.MethodGet, "/api/me/dashboard", login.Token, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	// clients are kept out of trainer and admin areas
	status, body = s.do(ctx, http.MethodGet, "/api/trainer/clients", login.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), `"receivedRole":"user"`)
	status, _ = s.do(ctx, http.MethodGet, "/api/admin/stats", login.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func (s *IntegrationTestSuite) TestTelegramLogin_Rejections() {
	ctx := context.Background()
	t := s.T()

	status, body := s.do(ctx, http.MethodPost, "/api/auth/telegram-init", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), auth.ErrMissingInitData.Error())

	tampered := signedInitData(newTelegramID(), "Eve") + "&extra=1"
	status, body = s.do(ctx, http.MethodPost, "/api/auth/telegram-init", "", map[string]string{"initData": tampered})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), auth.ErrInvalidInitData.Error())

	status, _ = s.do(ctx, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = s.do(ctx, http.MethodGet, "/api/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestLogout_RevokesToken() {
	ctx := context.Background()
	t := s.T()

	login := s.telegramLogin(ctx, newTelegramID(), gofakeit.FirstName())
	status, _ := s.do(ctx, http.MethodGet, "/api/me", login.Token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := s.do(ctx, http.MethodPost, "/api/auth/logout", login.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true}`, string(body))

	status, body = s.do(ctx, http.MethodGet, "/api/me", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "invalid_token")
}

func (s *IntegrationTestSuite) TestAdmin_ManagesUsersAndTrainers() {
	ctx := context.Background()
	t := s.T()

	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 14)
	s.createAdmin(ctx, email, password)

	status, _ := s.do(ctx, http.MethodPost, "/api/auth/admin/login", "",
		map[string]string{"email": email, "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, status)

	adminLogin := s.adminLogin(ctx, email, password)
	require.NotNil(t, adminLogin.User)
	assert.Equal(t, coaching.RoleAdmin, adminLogin.User.Role)

	// a second admin registered by the first one can sign in too
	secondEmail := gofakeit.Email()
	var registered auth.RegisterAdminResponse
	status = s.doJSON(ctx, http.MethodPost, "/api/auth/admin/register", adminLogin.Token,
		auth.RegisterAdminRequest{Email: secondEmail, Password: "second-password"}, &registered)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, registered.Success)
	s.adminLogin(ctx, secondEmail, "second-password")

	status, _ = s.do(ctx, http.MethodPost, "/api/auth/admin/register", adminLogin.Token,
		auth.RegisterAdminRequest{Email: secondEmail, Password: "second-password"})
	assert.Equal(t, http.StatusConflict, status)

	// promote a telegram user to trainer and give them a client
	trainerTelegramID, trainerName := newTelegramID(), gofakeit.FirstName()
	trainerLogin := s.telegramLogin(ctx, trainerTelegramID, trainerName)
	clientLogin := s.telegramLogin(ctx, newTelegramID(), "Ира")

	var promoted admin.SuccessResponse
	status = s.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/role", trainerLogin.User.ID),
		adminLogin.Token, map[string]string{"role": "trainer"}, &promoted)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, promoted.Success)

	status, _ = s.do(ctx, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/role", clientLogin.User.ID),
		adminLogin.Token, map[string]string{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, status)

	_, err := s.DB.Exec(ctx, `UPDATE users SET trainer_id = $1 WHERE id = $2`, trainerLogin.User.ID, clientLogin.User.ID)
	require.NoError(t, err)

	// the role travels in the token, so the trainer signs in again
	trainerLogin = s.telegramLogin(ctx, trainerTelegramID, trainerName)
	assert.Equal(t, coaching.RoleTrainer, trainerLogin.User.Role)

	var snapshots []coaching.Snapshot
	status = s.doJSON(ctx, http.MethodGet, "/api/trainer/clients", trainerLogin.Token, nil, &snapshots)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, snapshots, 1)
	assert.Equal(t, clientLogin.User.ID, snapshots[0].ID)
	assert.Equal(t, "Ира", snapshots[0].Name)

	status, _ = s.do(ctx, http.MethodGet, "/api/trainer/home", trainerLogin.Token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(ctx, http.MethodGet, "/api/trainer/monitoring", trainerLogin.Token, nil)
	assert.Equal(t, http.StatusOK, status)

	var stats admin.Stats
	require.Equal(t, http.StatusOK, s.doJSON(ctx, http.MethodGet, "/api/admin/stats", adminLogin.Token, nil, &stats))
	assert.GreaterOrEqual(t, stats.Users.Total, 4)
	assert.GreaterOrEqual(t, stats.Users.Admins, 2)
	assert.GreaterOrEqual(t, stats.Users.Trainers, 1)

	status, body := s.do(ctx, http.MethodGet, "/api/admin/audit-logs", adminLogin.Token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), string(audit.ActionRoleUpdate))
}
