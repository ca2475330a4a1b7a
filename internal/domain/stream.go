package domain

// StreamSnapshot describes a live broadcast. It only exists while the user is
// actually on air.
type StreamSnapshot struct {
	GameName    string `json:"game_name"`
	Title       string `json:"title"`
	ViewerCount uint64 `json:"viewer_count"`
}

// ChannelInfo is the platform's persisted "last known category" for a
// channel, independent of live status.
type ChannelInfo struct {
	GameName string `json:"game_name"`
	Title    string `json:"title"`
}
