package domain

// UserProfile is an immutable snapshot of a Twitch user, fetched per request
// and never cached.
type UserProfile struct {
	ID          string `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	ViewCount   uint64 `json:"view_count"`
}
