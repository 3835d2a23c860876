package greeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/olivier-w/winston/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Fixed phrases shown when the model fails or answers with nothing.
const (
	BlessingEmpty = "May your holiday be as brilliant as a golden emerald."
	BlessingError = "Wishing you a Winston Signature Christmas of pure gold."
	PoemEmpty     = "Emerald boughs in silent night,\nDraped in gold, a holy light.\nWinston stands in regal grace,\nTime stands still in this high space."
	PoemError     = "Majesty in emerald green, the finest gold that's ever seen."

	// Placeholder stands in for the poem until it resolves.
	Placeholder = "Atmosphere initializing..."

	// Author signs every wish.
	Author = "Winston"
)

const (
	DefaultRecipient = "our Valued Guest"
	DefaultStyle     = "opulent and cinematic"
)

// Settings configures the prompts and request limits.
type Settings struct {
	Recipient           string
	Style               string
	BlessingTemperature float32
	BlessingTopP        float32
	PoemTemperature     float32
	Timeout             time.Duration
}

// Service requests blessings and poems, substituting the fixed phrases on
// failure. Errors are logged and never returned. Safe for concurrent use.
type Service struct {
	gen      Generator
	settings Settings
	log      *log.Logger
	group    singleflight.Group
	history  *History
	now      func() time.Time
}

// NewService wraps gen. A nil logger discards output.
func NewService(gen Generator, settings Settings, logger *log.Logger) *Service {
	if settings.Recipient == "" {
		settings.Recipient = DefaultRecipient
	}
	if settings.Style == "" {
		settings.Style = DefaultStyle
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		gen:      gen,
		settings: settings,
		log:      logger.WithPrefix("greeting"),
		history:  NewHistory(32),
		now:      time.Now,
	}
}

// Settings returns the service's settings with defaults applied.
func (s *Service) Settings() Settings { return s.settings }

// Recent returns up to n delivered wishes, newest first.
func (s *Service) Recent(n int) []Wish { return s.history.Recent(n) }

func blessingPrompt(recipient, style string) string {
	return fmt.Sprintf("Generate a short, ultra-luxurious Christmas blessing for %s. "+
		"The tone should be %s, echoing the \"Winston\" brand: opulence, emerald elegance, "+
		"and golden success. Max 20 words.", recipient, style)
}

const poemPrompt = "Write a 4-line cinematic poem about a majestic Emerald and Gold Christmas tree " +
	"standing in a dark, silent hall. High elegance only."

// Blessing asks for a blessing addressed to recipient in the given style.
// Empty arguments use the configured defaults. The result is recorded in
// the history.
func (s *Service) Blessing(ctx context.Context, recipient, style string) Wish {
	if recipient == "" {
		recipient = s.settings.Recipient
	}
	if style == "" {
		style = s.settings.Style
	}
	opts := Options{Temperature: s.settings.BlessingTemperature, TopP: s.settings.BlessingTopP}
	text, fallback := s.resolve(ctx, "blessing", blessingPrompt(recipient, style), opts, BlessingEmpty, BlessingError)

	w := Wish{
		ID:        uuid.New(),
		Text:      text,
		Author:    Author,
		Sentiment: Classify(text),
		CreatedAt: s.now(),
		Fallback:  fallback,
	}
	s.history.Add(w)
	s.log.Debug("blessing delivered", "id", w.ID, "sentiment", w.Sentiment, "fallback", fallback)
	return w
}

// Poem asks for a four-line poem about the tree.
func (s *Service) Poem(ctx context.Context) string {
	opts := Options{Temperature: s.settings.PoemTemperature}
	text, _ := s.resolve(ctx, "poem", poemPrompt, opts, PoemEmpty, PoemError)
	return text
}

// resolve runs one request, collapsing identical concurrent prompts, and
// applies the fallback policy. The bool reports whether a fixed phrase was
// used.
func (s *Service) resolve(ctx context.Context, kind, prompt string, opts Options, empty, failed string) (string, bool) {
	v, err, shared := s.group.Do(kind+"\x00"+prompt, func() (any, error) {
		if s.settings.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
			defer cancel()
		}
		return s.gen.Generate(ctx, prompt, opts)
	})
	if shared {
		s.log.Debug("request shared", "kind", kind)
	}
	if err != nil {
		s.log.Warn("generation failed, using fallback", "kind", kind, "err", err)
		return failed, true
	}
	text := strings.TrimSpace(v.(string))
	if text == "" {
		s.log.Warn("generation returned nothing, using fallback", "kind", kind)
		return empty, true
	}
	return text, false
}
