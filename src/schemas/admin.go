package schemas

import "cryptodash/src/models"

type UserCreateRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type UserUpdateRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

type UserListResponse struct {
	Users    []UserInfo `json:"users"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

type LogListResponse struct {
	Logs  []models.OperationLog `json:"logs"`
	Total int64                 `json:"total"`
}

// SettingsDocument mirrors the admin settings form. It is persisted verbatim
// as the system_settings JSONB document.
type SettingsDocument struct {
	SiteName            string `json:"siteName"`
	Theme               string `json:"theme"`
	DefaultLanguage     string `json:"defaultLanguage"`
	AutoLogoutMinutes   int    `json:"autoLogoutTime"`
	AutoLogoutEnabled   bool   `json:"autoLogoutEnabled"`
	NotificationEnabled bool   `json:"notificationEnabled"`
	EmailNotification   bool   `json:"emailNotification"`
	SMSNotification     bool   `json:"smsNotification"`
	LogEnabled          bool   `json:"logEnabled"`
	DataRefreshSeconds  int    `json:"dataRefreshInterval"`
	CacheTimeMinutes    int    `json:"cacheTime"`
}

func DefaultSettings() SettingsDocument {
	return SettingsDocument{
		SiteName:            "Crypto Investment Dashboard",
		Theme:               "dark",
		DefaultLanguage:     "zh-CN",
		AutoLogoutMinutes:   60,
		AutoLogoutEnabled:   true,
		NotificationEnabled: true,
		EmailNotification:   true,
		SMSNotification:     false,
		LogEnabled:          true,
		DataRefreshSeconds:  30,
		CacheTimeMinutes:    10,
	}
}
