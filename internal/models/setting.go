package models

import "time"

// Well-known setting keys
const (
	SettingKeyAppPIN         = "app_pin"
	SettingKeyMarginPerDozen = "margin_per_dozen"
	SettingKeyBusinessName   = "business_name"
)

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateSettingRequest struct {
	Value string `json:"value"`
}
