package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	webAppDataKey = "WebAppData"
	// InitDataMaxAge is how long a Mini-App launch payload stays valid.
	InitDataMaxAge = time.Hour
)

var (
	ErrMissingInitData    = errors.New("missing_init_data")
	ErrInvalidInitData    = errors.New("invalid_init_data")
	ErrInvalidUserPayload = errors.New("invalid_user_payload")
)

// TelegramUser is the user object embedded in Mini-App initData. Absent
// fields stay nil so a login does not wipe stored profile values.
type TelegramUser struct {
	ID        int64   `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Username  *string `json:"username"`
	PhotoURL  *string `json:"photo_url"`
}

func (u TelegramUser) TelegramID() string {
	return strconv.FormatInt(u.ID, 10)
}

type InitData struct {
	User     *TelegramUser
	AuthDate time.Time
	QueryID  string
}

// ValidateInitData checks the Mini-App launch payload signature against the
// bot token and its freshness against maxAge.
func ValidateInitData(raw, botToken string, maxAge time.Duration, now time.Time) (*InitData, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMissingInitData
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrInvalidInitData, err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, fmt.Errorf("%w: hash missing", ErrInvalidInitData)
	}
	expected, err := hex.DecodeString(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: hash not hex", ErrInvalidInitData)
	}

	if !hmac.Equal(signInitData(values, botToken), expected) {
		return nil, fmt.Errorf("%w: signature mismatch", ErrInvalidInitData)
	}

	authDateUnix, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil || authDateUnix <= 0 {
		return nil, fmt.Errorf("%w: auth_date missing", ErrInvalidInitData)
	}
	authDate := time.Unix(authDateUnix, 0)
	if maxAge > 0 && now.Sub(authDate) > maxAge {
		return nil, fmt.Errorf("%w: expired", ErrInvalidInitData)
	}

	data := &InitData{
		AuthDate: authDate,
		QueryID:  values.Get("query_id"),
	}
	if rawUser := values.Get("user"); rawUser != "" {
		var user TelegramUser
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			return nil, fmt.Errorf("%w: user json: %v", ErrInvalidInitData, err)
		}
		data.User = &user
	} else if id, err := strconv.ParseInt(values.Get("id"), 10, 64); err == nil {
		// Login Widget payloads carry the user fields at the top level.
		data.User = &TelegramUser{
			ID:        id,
			FirstName: optionalValue(values, "first_name"),
			LastName:  optionalValue(values, "last_name"),
			Username:  optionalValue(values, "username"),
			PhotoURL:  optionalValue(values, "photo_url"),
		}
	}

	return data, nil
}

func optionalValue(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	v := values.Get(key)
	return &v
}

// signInitData computes HMAC-SHA256 over the sorted key=value lines of
// every field but hash, keyed by HMAC-SHA256("WebAppData", botToken).
func signInitData(values url.Values, botToken string) []byte {
	keys := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+"="+values.Get(key))
	}

	secret := hmac.New(sha256.New, []byte(webAppDataKey))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	return mac.Sum(nil)
}

// SignInitData builds a signed initData string. Used by tests and local
// tooling to fake Mini-App launches.
func SignInitData(values url.Values, botToken string) string {
	signed := url.Values{}
	for key, v := range values {
		signed[key] = v
	}
	signed.Set("hash", hex.EncodeToString(signInitData(values, botToken)))
	return signed.Encode()
}
