package domain

// BroadcastRecord is a historical archived broadcast. The Twitch videos
// endpoint returns them newest-first.
type BroadcastRecord struct {
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}
