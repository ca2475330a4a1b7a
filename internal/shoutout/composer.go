package shoutout

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/pscheid92/shoutbot/internal/domain"
)

// Template families keyed by (category kind, liveness). Every template takes
// the login first and the channel URL last; specific-category templates take
// the game name in between. Randomness picks the phrasing, never the facts.
var (
	specificLiveTemplates = []string{
		"%s is live right now playing %s! Drop by and say hi at %s",
		"Go check out %s, currently streaming %s over at %s",
		"Shoutout to %s, live with %s at this very moment! Show them some love at %s",
		"%s is on air with %s right this second. Catch them at %s",
	}
	specificOfflineTemplates = []string{
		"Shoutout to %s! They were last seen playing %s. Follow them at %s",
		"Go give %s a follow! They love streaming %s. Find them at %s",
		"Check out %s, known for playing %s. Their channel lives at %s",
		"%s streams %s and is well worth a follow: %s",
	}
	genericLiveTemplates = []string{
		"%s is live and playing games right now! Join in at %s",
		"Shoutout to %s, streaming games at this very moment! Go watch at %s",
		"%s is on air with some gameplay. Drop by at %s",
	}
	genericOfflineTemplates = []string{
		"Shoutout to %s! They stream all kinds of games. Give them a follow at %s",
		"Go check out %s, a gamer through and through: %s",
		"%s plays great games on stream. Follow them at %s",
	}
	unknownLiveTemplates = []string{
		"%s is live right now! See what they are up to at %s",
		"Shoutout to %s, streaming at this very moment: %s",
		"%s is on air! Drop in at %s",
	}
	unknownOfflineTemplates = []string{
		"Shoutout to %s! Check out their channel at %s",
		"Go give %s a follow over at %s",
		"%s is well worth a watch. Find them at %s",
	}
)

// Composer turns (login, category, liveness) into a shoutout sentence. It is
// stateless apart from its entropy source.
type Composer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewComposer creates a composer seeded from the wall clock.
func NewComposer() *Composer {
	return NewComposerWithSeed(time.Now().UnixNano())
}

// NewComposerWithSeed creates a composer with a fixed seed, for deterministic
// tests.
func NewComposerWithSeed(seed int64) *Composer {
	return &Composer{rng: rand.New(rand.NewSource(seed))}
}

// Compose renders a shoutout sentence for the given login, resolved category,
// and liveness flag. The result is never empty and always ends with the
// channel URL.
func (c *Composer) Compose(login string, category domain.ResolvedCategory, live bool) string {
	url := ChannelURL(login)

	switch category.Kind {
	case domain.CategorySpecific:
		if live {
			return fmt.Sprintf(c.pick(specificLiveTemplates), login, category.Name, url)
		}
		return fmt.Sprintf(c.pick(specificOfflineTemplates), login, category.Name, url)
	case domain.CategoryGeneric:
		if live {
			return fmt.Sprintf(c.pick(genericLiveTemplates), login, url)
		}
		return fmt.Sprintf(c.pick(genericOfflineTemplates), login, url)
	default:
		if live {
			return fmt.Sprintf(c.pick(unknownLiveTemplates), login, url)
		}
		return fmt.Sprintf(c.pick(unknownOfflineTemplates), login, url)
	}
}

func (c *Composer) pick(templates []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return templates[c.rng.Intn(len(templates))]
}

// ChannelURL builds the canonical channel link for a login.
func ChannelURL(login string) string {
	return "https://twitch.tv/" + strings.ToLower(login)
}
