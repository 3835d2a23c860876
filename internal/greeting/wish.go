package greeting

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sentiment is the mood a wish reads as.
type Sentiment string

const (
	Luxurious Sentiment = "luxurious"
	Warm      Sentiment = "warm"
	Hopeful   Sentiment = "hopeful"
)

// Wish is one delivered blessing.
type Wish struct {
	ID        uuid.UUID
	Text      string
	Author    string
	Sentiment Sentiment
	CreatedAt time.Time
	Fallback  bool // Text is a fixed phrase, not generated
}

var sentimentWords = []struct {
	s     Sentiment
	words []string
}{
	{Luxurious, []string{"gold", "emerald", "opulen", "luxur", "brilliant", "majest", "regal", "splendo"}},
	{Warm, []string{"warm", "love", "heart", "family", "cozy", "cosy", "embrace", "joy"}},
}

// Classify guesses the sentiment of text from its vocabulary.
func Classify(text string) Sentiment {
	lower := strings.ToLower(text)
	for _, c := range sentimentWords {
		for _, w := range c.words {
			if strings.Contains(lower, w) {
				return c.s
			}
		}
	}
	return Hopeful
}

// History keeps the wishes delivered this session, oldest first.
// It is never persisted.
type History struct {
	mu     sync.Mutex
	wishes []Wish
	limit  int
}

// NewHistory creates a History holding at most limit wishes. A
// non-positive limit keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add appends w, dropping the oldest wish when full.
func (h *History) Add(w Wish) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wishes = append(h.wishes, w)
	if h.limit > 0 && len(h.wishes) > h.limit {
		h.wishes = h.wishes[len(h.wishes)-h.limit:]
	}
}

// Recent returns up to n wishes, newest first.
func (h *History) Recent(n int) []Wish {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n > len(h.wishes) {
		n = len(h.wishes)
	}
	out := make([]Wish, 0, n)
	for i := len(h.wishes) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h.wishes[i])
	}
	return out
}
