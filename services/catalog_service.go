// services/catalog_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/wfunc/wordrush/game"
	"github.com/wfunc/wordrush/persistence"
)

// CatalogService sits between the server and the word store. It cleans up
// submitted word lists and feeds stored catalogs into a game's word-input
// phase.
type CatalogService struct {
	store persistence.WordStore
}

func NewCatalogService(store persistence.WordStore) *CatalogService {
	return &CatalogService{store: store}
}

// Available reports whether a backing store was configured.
func (s *CatalogService) Available() bool {
	return s.store != nil
}

// SaveCatalog stores the named list, dropping blank lines. Duplicate words
// are kept; they become distinct entities when loaded into a game.
func (s *CatalogService) SaveCatalog(name string, wordTexts []string) error {
	if s.store == nil {
		return fmt.Errorf("no word store configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("catalog name is empty")
	}

	cleaned := make([]string, 0, len(wordTexts))
	for _, text := range wordTexts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		cleaned = append(cleaned, text)
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("catalog %q has no usable words", name)
	}

	return s.store.SaveCatalog(name, cleaned)
}

// LoadIntoGame adds every word of the named catalog to the engine's word
// input. Returns how many words were accepted. The engine must already sit
// in the word-input phase; words refused there are counted out, not fatal.
func (s *CatalogService) LoadIntoGame(engine *game.Engine, name string) (int, error) {
	if s.store == nil {
		return 0, fmt.Errorf("no word store configured")
	}
	texts, err := s.store.LoadCatalog(name)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, text := range texts {
		w, err := engine.AddWord(text)
		if err != nil || w == nil {
			continue
		}
		added++
	}
	return added, nil
}

// ListCatalogs returns the stored catalog names.
func (s *CatalogService) ListCatalogs() ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no word store configured")
	}
	return s.store.ListCatalogs()
}
