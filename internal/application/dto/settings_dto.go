package dto

// UpdateSettingsRequest cuerpo de PUT /api/settings.
type UpdateSettingsRequest struct {
	OffPeakDays []string `json:"offPeakDays"`
}

// SettingsResponse configuración del taller.
type SettingsResponse struct {
	OffPeakDays []string `json:"offPeakDays"`
}
