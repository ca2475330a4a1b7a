package shoutout

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/pscheid92/shoutbot/internal/domain"
	apperrors "github.com/pscheid92/shoutbot/internal/errors"
	"github.com/pscheid92/shoutbot/internal/metrics"
)

// usernamePattern is the shape of a valid Twitch login after normalization.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{4,25}$`)

// validationMessage is returned verbatim for any username that fails
// validation. Rendered as plain text with a 200 status, never as an error.
const validationMessage = "That doesn't look like a valid Twitch username. Usernames are 4 to 25 characters: letters, numbers, and underscores."

// upstreamClient is the full upstream surface the service depends on.
type upstreamClient interface {
	categorySource
	GetUserByLogin(ctx context.Context, login string) (*domain.UserProfile, error)
}

// Service is the application layer: it validates usernames, drives the
// resolution pipeline, and composes the final message. The shoutout path
// never fails; under total upstream failure it degrades to a generic
// sentence referencing only the username and channel URL.
type Service struct {
	client   upstreamClient
	resolver *CategoryResolver
	composer *Composer
}

// NewService creates the shoutout service.
func NewService(client upstreamClient, resolver *CategoryResolver, composer *Composer) *Service {
	return &Service{
		client:   client,
		resolver: resolver,
		composer: composer,
	}
}

// NormalizeUsername trims whitespace, strips a single leading @, and checks
// the result against the Twitch login pattern.
func NormalizeUsername(username string) (string, bool) {
	login := strings.TrimSpace(username)
	login = strings.TrimPrefix(login, "@")
	if !usernamePattern.MatchString(login) {
		return "", false
	}
	return login, true
}

// ResolveShoutout produces the shoutout message for a username. It always
// returns a non-empty string: validation failures and missing users get
// fixed explanatory messages, and any residual failure falls back to a
// generic shoutout so the feature is never fully unavailable.
func (s *Service) ResolveShoutout(ctx context.Context, username string) (message string) {
	login, ok := NormalizeUsername(username)
	if !ok {
		metrics.ResolutionsTotal.WithLabelValues("invalid").Inc()
		return validationMessage
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic during shoutout resolution", "login", login, "panic", r)
			metrics.ResolutionsTotal.WithLabelValues("fallback").Inc()
			message = fallbackShoutout(login)
		}
	}()

	user, err := s.client.GetUserByLogin(ctx, login)
	if err != nil {
		// No token available: upstream is dark, not the user's fault.
		slog.Warn("Falling back to generic shoutout", "login", login, "error", err)
		metrics.ResolutionsTotal.WithLabelValues("fallback").Inc()
		return fallbackShoutout(login)
	}
	if user == nil {
		metrics.ResolutionsTotal.WithLabelValues("not_found").Inc()
		return fmt.Sprintf("User %q not found on Twitch. Please check the username and try again.", login)
	}

	resolution := s.resolver.Resolve(ctx, user.ID)
	metrics.ResolutionsTotal.WithLabelValues(resolution.Category.Kind.String()).Inc()

	return s.composer.Compose(user.Login, resolution.Category, resolution.Live)
}

// fallbackShoutout is the last line of defense: a sentence built from nothing
// but the username and channel URL.
func fallbackShoutout(login string) string {
	return fmt.Sprintf("Go check out %s over at %s!", login, ChannelURL(login))
}

// Diagnostics exposes every raw upstream resource plus the resolver's verdict
// for operational troubleshooting.
type Diagnostics struct {
	User       *domain.UserProfile      `json:"user"`
	Stream     *domain.StreamSnapshot   `json:"stream"`
	Channel    *domain.ChannelInfo      `json:"channel"`
	Broadcasts []domain.BroadcastRecord `json:"broadcasts"`
	Resolution domain.Resolution        `json:"resolution"`
	Message    string                   `json:"message"`
}

// Debug fetches all upstream resources for a username without the fail-to-
// fallback behavior of ResolveShoutout. Validation and lookup failures are
// reported as structured errors so the HTTP layer can map them to statuses.
func (s *Service) Debug(ctx context.Context, username string) (*Diagnostics, error) {
	login, ok := NormalizeUsername(username)
	if !ok {
		return nil, apperrors.ValidationError("invalid username").WithField("username", username)
	}

	user, err := s.client.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFoundError("user not found on Twitch").WithField("login", login)
	}

	stream, _ := s.client.GetStream(ctx, user.ID)
	channel, _ := s.client.GetChannel(ctx, user.ID)
	broadcasts, _ := s.client.GetRecentBroadcasts(ctx, user.ID)

	resolution := s.resolver.Resolve(ctx, user.ID)

	return &Diagnostics{
		User:       user,
		Stream:     stream,
		Channel:    channel,
		Broadcasts: broadcasts,
		Resolution: resolution,
		Message:    s.composer.Compose(user.Login, resolution.Category, resolution.Live),
	}, nil
}
