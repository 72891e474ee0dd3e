package words

import (
	"math/rand"
	"testing"
)

func newTestPool() *Pool {
	return NewPool(MinWordsToStart, rand.New(rand.NewSource(42)))
}

func TestPool_AddWord(t *testing.T) {
	pool := newTestPool()

	w, err := pool.AddWord("pizza")
	if err != nil {
		t.Fatalf("AddWord failed: %v", err)
	}
	if w.ID == "" {
		t.Error("Expected a generated word id")
	}
	if w.Text != "pizza" {
		t.Errorf("Expected text %q, got %q", "pizza", w.Text)
	}
	if pool.Len() != 1 {
		t.Errorf("Expected pool size 1, got %d", pool.Len())
	}
}

func TestPool_AddWord_RejectsBlank(t *testing.T) {
	pool := newTestPool()

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := pool.AddWord(text); err != ErrEmptyWord {
			t.Errorf("AddWord(%q): expected ErrEmptyWord, got %v", text, err)
		}
	}
	if pool.Len() != 0 {
		t.Errorf("Blank submissions must not grow the pool, size %d", pool.Len())
	}
}

func TestPool_AddWord_DuplicateTextDistinctIdentity(t *testing.T) {
	pool := newTestPool()

	w1, _ := pool.AddWord("taco")
	w2, _ := pool.AddWord("taco")

	if w1.ID == w2.ID {
		t.Error("Duplicate text must still produce distinct word identities")
	}
	if pool.Len() != 2 {
		t.Errorf("Expected 2 distinct entities, got %d", pool.Len())
	}
}

func TestPool_CanStartGame(t *testing.T) {
	pool := newTestPool()

	pool.AddWord("pizza")
	pool.AddWord("burger")
	if pool.CanStartGame() {
		t.Error("CanStartGame should be false with 2 words")
	}

	pool.AddWord("taco")
	if !pool.CanStartGame() {
		t.Error("CanStartGame should be true with 3 words")
	}
}

func TestPool_SetupForRound_Fresh(t *testing.T) {
	pool := newTestPool()
	pool.AddWord("a")
	pool.AddWord("b")
	pool.AddWord("c")

	pool.SetupForRound(map[string]struct{}{})

	if pool.UnusedCount() != 3 {
		t.Errorf("Fresh round should make all 3 words drawable, got %d", pool.UnusedCount())
	}
	for _, w := range pool.Words() {
		if w.Used {
			t.Errorf("Word %q should have its used flag reset", w.Text)
		}
	}
}

func TestPool_SetupForRound_Resume(t *testing.T) {
	pool := newTestPool()
	w1, _ := pool.AddWord("a")
	pool.AddWord("b")
	pool.AddWord("c")

	pool.SetupForRound(map[string]struct{}{w1.ID: {}})

	if pool.UnusedCount() != 2 {
		t.Errorf("Resume should exclude the used word, got %d drawable", pool.UnusedCount())
	}
	if !w1.Used {
		t.Error("A word in the used set should keep its used flag")
	}
}

func TestPool_NextWord_DrainsPool(t *testing.T) {
	pool := newTestPool()
	pool.AddWord("a")
	pool.AddWord("b")
	pool.AddWord("c")
	pool.SetupForRound(map[string]struct{}{})

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		w := pool.NextWord()
		if w == nil {
			t.Fatalf("Draw %d returned nil with words remaining", i)
		}
		if seen[w.ID] {
			t.Fatalf("Word %q drawn twice", w.Text)
		}
		seen[w.ID] = true
		pool.MarkCurrentGuessed()
	}

	if pool.NextWord() != nil {
		t.Error("Draw from an exhausted pool should return nil")
	}
}

func TestPool_SkipCurrent_DrawsDifferentWord(t *testing.T) {
	pool := newTestPool()
	pool.AddWord("a")
	pool.AddWord("b")
	pool.SetupForRound(map[string]struct{}{})

	first := pool.NextWord()
	next := pool.SkipCurrent()

	if next == nil {
		t.Fatal("Skip with another word available should draw a replacement")
	}
	if next.ID == first.ID {
		t.Error("Skip must not immediately redraw the skipped word")
	}
	if pool.UnusedCount() != 2 {
		t.Errorf("Skip must not lose words, drawable count %d", pool.UnusedCount())
	}
}

func TestPool_SkipCurrent_NoOpWithOneWordLeft(t *testing.T) {
	pool := newTestPool()
	pool.AddWord("a")
	pool.SetupForRound(map[string]struct{}{})

	current := pool.NextWord()
	if got := pool.SkipCurrent(); got != nil {
		t.Errorf("Skip with a lone word should be a no-op, got %q", got.Text)
	}
	if pool.Current() != current {
		t.Error("Current word must be unchanged after a refused skip")
	}
}

func TestPool_SkipCurrent_NoOpWithoutCurrent(t *testing.T) {
	pool := newTestPool()
	pool.AddWord("a")
	pool.AddWord("b")
	pool.SetupForRound(map[string]struct{}{})

	if pool.SkipCurrent() != nil {
		t.Error("Skip with no active word should be a no-op")
	}
}

func TestPool_MarkCurrentGuessed(t *testing.T) {
	pool := newTestPool()
	pool.AddWord("a")
	pool.AddWord("b")
	pool.SetupForRound(map[string]struct{}{})

	w := pool.NextWord()
	guessed := pool.MarkCurrentGuessed()

	if guessed != w {
		t.Error("MarkCurrentGuessed should return the active word")
	}
	if !w.Used {
		t.Error("Guessed word should be flagged used")
	}
	if pool.Current() != nil {
		t.Error("No word should be active after a guess")
	}
	if !pool.HasUnused() {
		t.Error("One word should remain drawable")
	}

	if pool.MarkCurrentGuessed() != nil {
		t.Error("Guess with no active word should be a no-op")
	}
}

func TestPool_Clear(t *testing.T) {
	pool := newTestPool()
	pool.AddWord("a")
	pool.SetupForRound(map[string]struct{}{})
	pool.NextWord()

	pool.Clear()

	if pool.Len() != 0 || pool.Current() != nil || pool.HasUnused() {
		t.Error("Clear should drop all words and the active draw")
	}
}
