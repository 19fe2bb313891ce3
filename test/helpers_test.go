//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fitcoach/backend/internal/auth"

	"github.com/stretchr/testify/require"
)

var httpClient = &http.Client{
	Timeout: 10 * time.Second,
	// the web fallback redirects to the frontend, tests inspect the 302 itself
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverEndpoint+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health status %d", resp.StatusCode)
	}
	return nil
}

// do sends body as JSON when it is not nil and returns the status with
// the raw response body.
func (s *IntegrationTestSuite) do(ctx context.Context, method, path, token string, body any) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "integration-test")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) doJSON(ctx context.Context, method, path, token string, body, dst any) int {
	status, respBytes := s.do(ctx, method, path, token, body)
	if dst != nil && status < http.StatusBadRequest {
		require.NoError(s.T(), json.Unmarshal(respBytes, dst), string(respBytes))
	}
	return status
}

func signedInitData(telegramID int64, firstName string) string {
	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	values.Set("query_id", "AAH-integration")
	values.Set("user", fmt.Sprintf(`{"id":%d,"first_name":%q}`, telegramID, firstName))
	return auth.SignInitData(values, testBotToken)
}

func (s *IntegrationTestSuite) telegramLogin(ctx context.Context, telegramID int64, firstName string) auth.TelegramLoginResponse {
	var resp auth.TelegramLoginResponse
	status := s.doJSON(ctx, http.MethodPost, "/api/auth/telegram-init", "",
		map[string]string{"initData": signedInitData(telegramID, firstName)}, &resp)
	require.Equal(s.T(), http.StatusOK, status)
	require.NotEmpty(s.T(), resp.Token)
	require.NotNil(s.T(), resp.User)
	return resp
}

func (s *IntegrationTestSuite) adminLogin(ctx context.Context, email, password string) auth.AdminLoginResponse {
	var resp auth.AdminLoginResponse
	status := s.doJSON(ctx, http.MethodPost, "/api/auth/admin/login", "",
		map[string]string{"email": email, "password": password}, &resp)
	require.Equal(s.T(), http.StatusOK, status)
	require.NotEmpty(s.T(), resp.Token)
	return resp
}
