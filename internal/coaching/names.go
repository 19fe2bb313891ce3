package coaching

import "strings"

const noNameFallback = "Без имени"

// DisplayName picks the best human readable name for a user.
func DisplayName(u *User) string {
	if name := u.FullName(); name != "" {
		return name
	}
	if u.Username != nil && strings.TrimSpace(*u.Username) != "" {
		return *u.Username
	}
	if u.TelegramID != nil && *u.TelegramID != "" {
		return "ID " + *u.TelegramID
	}
	return noNameFallback
}
