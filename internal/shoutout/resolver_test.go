package shoutout

import (
	"context"
	"testing"

	"github.com/pscheid92/shoutbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

// fakeCategorySource counts calls so tests can assert the fallback chain
// short-circuits.
type fakeCategorySource struct {
	stream     *domain.StreamSnapshot
	channel    *domain.ChannelInfo
	broadcasts []domain.BroadcastRecord

	streamCalls     int
	channelCalls    int
	broadcastsCalls int
}

func (f *fakeCategorySource) GetStream(ctx context.Context, userID string) (*domain.StreamSnapshot, error) {
	f.streamCalls++
	return f.stream, nil
}

func (f *fakeCategorySource) GetChannel(ctx context.Context, broadcasterID string) (*domain.ChannelInfo, error) {
	f.channelCalls++
	return f.channel, nil
}

func (f *fakeCategorySource) GetRecentBroadcasts(ctx context.Context, userID string) ([]domain.BroadcastRecord, error) {
	f.broadcastsCalls++
	return f.broadcasts, nil
}

func TestResolve_LiveStreamShortCircuits(t *testing.T) {
	upstream := &fakeCategorySource{
		stream: &domain.StreamSnapshot{GameName: "Valorant", Title: "ranked grind"},
	}
	resolver := NewCategoryResolver(upstream)

	res := resolver.Resolve(context.Background(), "123")

	assert.Equal(t, domain.Specific("Valorant"), res.Category)
	assert.True(t, res.Live)
	assert.Equal(t, 1, upstream.streamCalls)
	assert.Equal(t, 0, upstream.channelCalls, "channel lookup must not run after a live match")
	assert.Equal(t, 0, upstream.broadcastsCalls, "broadcast history must not run after a live match")
}

func TestResolve_LiveJustChattingFallsThrough(t *testing.T) {
	upstream := &fakeCategorySource{
		stream:  &domain.StreamSnapshot{GameName: "Just Chatting"},
		channel: &domain.ChannelInfo{GameName: "Elden Ring"},
	}
	resolver := NewCategoryResolver(upstream)

	res := resolver.Resolve(context.Background(), "123")

	assert.Equal(t, domain.Specific("Elden Ring"), res.Category)
	assert.True(t, res.Live, "liveness survives falling past the stream step")
	assert.Equal(t, 1, upstream.channelCalls)
}

func TestResolve_OfflineChannelCategory(t *testing.T) {
	upstream := &fakeCategorySource{
		channel: &domain.ChannelInfo{GameName: "Stardew Valley"},
	}
	resolver := NewCategoryResolver(upstream)

	res := resolver.Resolve(context.Background(), "123")

	assert.Equal(t, domain.Specific("Stardew Valley"), res.Category)
	assert.False(t, res.Live)
	assert.Equal(t, 0, upstream.broadcastsCalls)
}

func TestResolve_ShortBroadcastSkippedRegardlessOfTitle(t *testing.T) {
	upstream := &fakeCategorySource{
		broadcasts: []domain.BroadcastRecord{
			{Title: "Epic Minecraft marathon", Duration: "PT15M", Type: "archive"},
		},
	}
	resolver := NewCategoryResolver(upstream)

	res := resolver.Resolve(context.Background(), "123")

	assert.Equal(t, domain.CategoryUnknown, res.Category.Kind)
}

func TestResolve_DenylistedTitleSkipped(t *testing.T) {
	upstream := &fakeCategorySource{
		broadcasts: []domain.BroadcastRecord{
			{Title: "Just chatting with friends", Duration: "PT2H", Type: "archive"},
		},
	}
	resolver := NewCategoryResolver(upstream)

	res := resolver.Resolve(context.Background(), "123")

	assert.Equal(t, domain.CategoryUnknown, res.Category.Kind)
}

func TestResolve_AllowlistMatchYieldsSpecificGame(t *testing.T) {
	upstream := &fakeCategorySource{
		channel: &domain.ChannelInfo{GameName: "Just Chatting"},
		broadcasts: []domain.BroadcastRecord{
			{Title: "Late night Minecraft build", Duration: "PT45M", Type: "archive"},
		},
	}
	resolver := NewCategoryResolver(upstream)

	res := resolver.Resolve(context.Background(), "123")

	assert.Equal(t, domain.Specific("Minecraft"), res.Category)
}

func TestResolve_QualifyingBroadcastWithoutAllowlistHitIsGeneric(t *testing.T) {
	upstream := &fakeCategorySource{
		broadcasts: []domain.BroadcastRecord{
			{Title: "sweaty ranked grind day 4", Duration: "PT3H", Type: "archive"},
		},
	}
	resolver := NewCategoryResolver(upstream)

	res := resolver.Resolve(context.Background(), "123")

	assert.Equal(t, domain.CategoryGeneric, res.Category.Kind)
}

func TestResolve_NewestFirstScanStopsAtFirstQualifier(t *testing.T) {
	upstream := &fakeCategorySource{
		broadcasts: []domain.BroadcastRecord{
			{Title: "IRL walk around town", Duration: "PT2H", Type: "archive"},
			{Title: "Valorant customs with viewers", Duration: "PT1H30M", Type: "archive"},
			{Title: "Fortnite squads", Duration: "PT4H", Type: "archive"},
		},
	}
	resolver := NewCategoryResolver(upstream)

	res := resolver.Resolve(context.Background(), "123")

	assert.Equal(t, domain.Specific("Valorant"), res.Category, "scan stops at the first qualifying record")
}

func TestResolve_NothingQualifiesIsUnknown(t *testing.T) {
	upstream := &fakeCategorySource{}
	resolver := NewCategoryResolver(upstream)

	res := resolver.Resolve(context.Background(), "123")

	assert.Equal(t, domain.CategoryUnknown, res.Category.Kind)
	assert.False(t, res.Live)
	assert.Equal(t, 1, upstream.streamCalls)
	assert.Equal(t, 1, upstream.channelCalls)
	assert.Equal(t, 1, upstream.broadcastsCalls)
}
