// words/pool.go
package words

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// Word is a single guessable entry. Used flips when the word is guessed
// correctly in the current round cycle and resets each round.
type Word struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Used bool   `json:"used"`
}

var ErrEmptyWord = errors.New("word text is empty")

// MinWordsToStart is the default floor for a playable game.
const MinWordsToStart = 3

// Pool owns the master word list and the per-round unused working set.
// The word under guess (current) is held outside the unused slice; it
// rejoins the pool on skip and leaves it for good on a correct guess.
type Pool struct {
	words    []*Word
	unused   []*Word
	current  *Word
	minWords int
	rng      *rand.Rand
}

// NewPool creates a pool drawing from rng. Inject a seeded source in tests
// to make draws deterministic.
func NewPool(minWords int, rng *rand.Rand) *Pool {
	if minWords <= 0 {
		minWords = MinWordsToStart
	}
	return &Pool{
		minWords: minWords,
		rng:      rng,
	}
}

// AddWord appends a new word with a fresh identity. Duplicate text is
// allowed and creates a distinct entity. Blank text is rejected.
func (p *Pool) AddWord(text string) (*Word, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyWord
	}
	w := &Word{
		ID:   uuid.New().String(),
		Text: text,
	}
	p.words = append(p.words, w)
	return w, nil
}

// CanStartGame reports whether enough words have been collected.
func (p *Pool) CanStartGame() bool {
	return len(p.words) >= p.minWords
}

// SetupForRound rebuilds the unused set from the master list minus usedIDs.
// An empty usedIDs means a fresh round: every word becomes available again
// and its Used flag resets.
func (p *Pool) SetupForRound(usedIDs map[string]struct{}) {
	p.unused = p.unused[:0]
	p.current = nil
	for _, w := range p.words {
		if _, used := usedIDs[w.ID]; used {
			w.Used = true
			continue
		}
		w.Used = false
		p.unused = append(p.unused, w)
	}
}

// NextWord draws uniformly at random from the unused set and makes the drawn
// word current. Returns nil when the set is empty.
func (p *Pool) NextWord() *Word {
	if len(p.unused) == 0 {
		p.current = nil
		return nil
	}
	i := p.rng.Intn(len(p.unused))
	w := p.unused[i]
	p.unused = append(p.unused[:i], p.unused[i+1:]...)
	p.current = w
	return w
}

// SkipCurrent requeues the current word at the back of the unused ordering
// and draws a replacement, guaranteed to differ from the skipped word.
// It is a no-op (returning nil) when no word is active or when fewer than
// two words remain unused.
func (p *Pool) SkipCurrent() *Word {
	if p.current == nil || len(p.unused) == 0 {
		return nil
	}
	skipped := p.current
	p.unused = append(p.unused, skipped)

	// Draw from everything except the word just requeued.
	i := p.rng.Intn(len(p.unused) - 1)
	w := p.unused[i]
	p.unused = append(p.unused[:i], p.unused[i+1:]...)
	p.current = w
	return w
}

// MarkCurrentGuessed flags the current word used and retires it from the
// unused set for the rest of the round. Returns the guessed word, or nil if
// no word is active.
func (p *Pool) MarkCurrentGuessed() *Word {
	if p.current == nil {
		return nil
	}
	w := p.current
	w.Used = true
	p.current = nil
	return w
}

// Current returns the word under guess, if any.
func (p *Pool) Current() *Word {
	return p.current
}

// HasUnused reports whether any word besides the current one remains
// drawable this round.
func (p *Pool) HasUnused() bool {
	return len(p.unused) > 0
}

// UnusedCount counts drawable words, including the current one.
func (p *Pool) UnusedCount() int {
	n := len(p.unused)
	if p.current != nil {
		n++
	}
	return n
}

// Words exposes the master list for analytics and snapshots.
func (p *Pool) Words() []*Word {
	return p.words
}

// Len reports the master list size.
func (p *Pool) Len() int {
	return len(p.words)
}

// Clear drops every word. Used on game reset back to Setup.
func (p *Pool) Clear() {
	p.words = nil
	p.unused = nil
	p.current = nil
}
