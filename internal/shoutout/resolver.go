package shoutout

import (
	"context"
	"strings"
	"time"

	"github.com/pscheid92/shoutbot/internal/domain"
	"github.com/pscheid92/shoutbot/internal/metrics"
)

// genericCategory is Twitch's catch-all non-gameplay category. It carries no
// information about what a channel is known for, so the resolver skips past it.
const genericCategory = "Just Chatting"

// minBroadcastDuration filters out short archived broadcasts, which are
// low-confidence signals for real game content.
const minBroadcastDuration = 30 * time.Minute

// titleDenylist marks archived broadcast titles as non-gameplay content.
// Matched case-insensitively as substrings.
var titleDenylist = []string{
	"react",
	"irl",
	"chat",
	"talk",
	"podcast",
	"interview",
	"music",
}

// knownGames maps title substrings to canonical game names. Ordered so that
// scanning is deterministic; more specific substrings come before ambiguous
// ones.
var knownGames = []struct {
	substr string
	name   string
}{
	{"minecraft", "Minecraft"},
	{"valorant", "Valorant"},
	{"fortnite", "Fortnite"},
	{"league of legends", "League of Legends"},
	{"apex", "Apex Legends"},
	{"warzone", "Call of Duty: Warzone"},
	{"overwatch", "Overwatch 2"},
	{"elden ring", "Elden Ring"},
	{"baldur", "Baldur's Gate 3"},
	{"counter-strike", "Counter-Strike 2"},
	{"cs2", "Counter-Strike 2"},
	{"dota", "Dota 2"},
	{"rocket league", "Rocket League"},
	{"stardew", "Stardew Valley"},
	{"terraria", "Terraria"},
	{"gta", "Grand Theft Auto V"},
	{"wow", "World of Warcraft"},
	{"hearthstone", "Hearthstone"},
	{"rust", "Rust"},
}

// categorySource is the subset of the upstream client the resolver needs.
type categorySource interface {
	GetStream(ctx context.Context, userID string) (*domain.StreamSnapshot, error)
	GetChannel(ctx context.Context, broadcasterID string) (*domain.ChannelInfo, error)
	GetRecentBroadcasts(ctx context.Context, userID string) ([]domain.BroadcastRecord, error)
}

// CategoryResolver decides what a streamer is known for playing. Live and
// persisted channel metadata are authoritative; archived-broadcast title
// sniffing is a last resort and never fabricates a specific game name
// unless a known title substring matched.
type CategoryResolver struct {
	upstream categorySource
}

// NewCategoryResolver creates a resolver backed by the given upstream client.
func NewCategoryResolver(upstream categorySource) *CategoryResolver {
	return &CategoryResolver{upstream: upstream}
}

// Resolve runs the ordered fallback chain for a user id, stopping at the
// first conclusive signal. Upstream failures look like absent data, so the
// chain degrades instead of aborting.
func (r *CategoryResolver) Resolve(ctx context.Context, userID string) domain.Resolution {
	stream, err := r.upstream.GetStream(ctx, userID)
	live := err == nil && stream != nil
	if live && !isGenericCategory(stream.GameName) && stream.GameName != "" {
		metrics.ResolutionSteps.WithLabelValues("stream").Inc()
		return domain.Resolution{Category: domain.Specific(stream.GameName), Live: true}
	}

	channel, err := r.upstream.GetChannel(ctx, userID)
	if err == nil && channel != nil && !isGenericCategory(channel.GameName) && channel.GameName != "" {
		metrics.ResolutionSteps.WithLabelValues("channel").Inc()
		return domain.Resolution{Category: domain.Specific(channel.GameName), Live: live}
	}

	broadcasts, err := r.upstream.GetRecentBroadcasts(ctx, userID)
	if err == nil {
		if category, ok := scanBroadcasts(broadcasts); ok {
			metrics.ResolutionSteps.WithLabelValues("broadcasts").Inc()
			return domain.Resolution{Category: category, Live: live}
		}
	}

	metrics.ResolutionSteps.WithLabelValues("none").Inc()
	return domain.Resolution{Category: domain.Unknown(), Live: live}
}

// scanBroadcasts walks archived broadcasts newest-first and returns the first
// qualifying signal: Specific on an allowlist hit, Generic when a record
// passes the duration and denylist filters without a known title.
func scanBroadcasts(broadcasts []domain.BroadcastRecord) (domain.ResolvedCategory, bool) {
	for _, record := range broadcasts {
		d, ok := parseISO8601Duration(record.Duration)
		if !ok || d < minBroadcastDuration {
			continue
		}

		title := strings.ToLower(record.Title)
		if containsAny(title, titleDenylist) {
			continue
		}

		for _, game := range knownGames {
			if strings.Contains(title, game.substr) {
				return domain.Specific(game.name), true
			}
		}

		return domain.Generic(), true
	}
	return domain.Unknown(), false
}

func isGenericCategory(name string) bool {
	return strings.EqualFold(name, genericCategory)
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
