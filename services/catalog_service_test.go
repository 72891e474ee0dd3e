package services

import (
	"os"
	"testing"
	"time"

	"github.com/wfunc/wordrush/game"
	"github.com/wfunc/wordrush/logger"
	"github.com/wfunc/wordrush/persistence"
	"github.com/wfunc/wordrush/timer"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// fakeStore is an in-memory WordStore.
type fakeStore struct {
	catalogs map[string][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{catalogs: make(map[string][]string)}
}

func (s *fakeStore) SaveCatalog(name string, words []string) error {
	s.catalogs[name] = append([]string(nil), words...)
	return nil
}

func (s *fakeStore) LoadCatalog(name string) ([]string, error) {
	words, ok := s.catalogs[name]
	if !ok {
		return nil, persistence.ErrCatalogNotFound
	}
	return words, nil
}

func (s *fakeStore) ListCatalogs() ([]string, error) {
	names := make([]string, 0, len(s.catalogs))
	for name := range s.catalogs {
		names = append(names, name)
	}
	return names, nil
}

func (s *fakeStore) DeleteCatalog(name string) error {
	if _, ok := s.catalogs[name]; !ok {
		return persistence.ErrCatalogNotFound
	}
	delete(s.catalogs, name)
	return nil
}

func (s *fakeStore) Close() error { return nil }

func TestCatalogService_SaveDropsBlankLines(t *testing.T) {
	store := newFakeStore()
	service := NewCatalogService(store)

	err := service.SaveCatalog("dinner", []string{"pizza", "  ", "", "burger"})
	if err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}

	saved := store.catalogs["dinner"]
	if len(saved) != 2 {
		t.Fatalf("Expected 2 words after cleaning, got %v", saved)
	}
}

func TestCatalogService_SaveRejectsEmpty(t *testing.T) {
	service := NewCatalogService(newFakeStore())

	if err := service.SaveCatalog("  ", []string{"pizza"}); err == nil {
		t.Error("Blank catalog name should be rejected")
	}
	if err := service.SaveCatalog("dinner", []string{"", "  "}); err == nil {
		t.Error("Catalog with only blank words should be rejected")
	}
}

func TestCatalogService_LoadIntoGame(t *testing.T) {
	store := newFakeStore()
	store.catalogs["dinner"] = []string{"pizza", "burger", "taco"}
	service := NewCatalogService(store)

	scheduler := timer.NewScheduler(time.Hour)
	defer scheduler.Stop()
	engine := game.NewEngine(game.DefaultSettings(), scheduler)
	engine.ProceedToWordInput()

	added, err := service.LoadIntoGame(engine, "dinner")
	if err != nil {
		t.Fatalf("LoadIntoGame failed: %v", err)
	}
	if added != 3 {
		t.Errorf("Expected 3 words added, got %d", added)
	}
	if engine.WordCount() != 3 {
		t.Errorf("Expected engine word count 3, got %d", engine.WordCount())
	}
}

func TestCatalogService_LoadIntoGameWrongPhase(t *testing.T) {
	store := newFakeStore()
	store.catalogs["dinner"] = []string{"pizza"}
	service := NewCatalogService(store)

	scheduler := timer.NewScheduler(time.Hour)
	defer scheduler.Stop()
	engine := game.NewEngine(game.DefaultSettings(), scheduler)

	// Engine still in setup; every word is silently refused.
	added, err := service.LoadIntoGame(engine, "dinner")
	if err != nil {
		t.Fatalf("LoadIntoGame failed: %v", err)
	}
	if added != 0 {
		t.Errorf("Expected 0 words added outside word input, got %d", added)
	}
}

func TestCatalogService_MissingCatalog(t *testing.T) {
	service := NewCatalogService(newFakeStore())

	scheduler := timer.NewScheduler(time.Hour)
	defer scheduler.Stop()
	engine := game.NewEngine(game.DefaultSettings(), scheduler)
	engine.ProceedToWordInput()

	if _, err := service.LoadIntoGame(engine, "nope"); err == nil {
		t.Error("Loading a missing catalog should fail")
	}
}

func TestCatalogService_Unavailable(t *testing.T) {
	service := NewCatalogService(nil)

	if service.Available() {
		t.Error("Service without a store should report unavailable")
	}
	if err := service.SaveCatalog("dinner", []string{"pizza"}); err == nil {
		t.Error("SaveCatalog without a store should fail")
	}
	if _, err := service.ListCatalogs(); err == nil {
		t.Error("ListCatalogs without a store should fail")
	}
}
