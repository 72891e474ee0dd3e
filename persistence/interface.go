// persistence/interface.go
package persistence

import (
	"fmt"
)

// WordStore holds named word catalogs: reusable lists players load into the
// word-input phase instead of typing everything again. Game history is
// deliberately not part of this interface.
type WordStore interface {
	SaveCatalog(name string, words []string) error
	LoadCatalog(name string) ([]string, error)
	ListCatalogs() ([]string, error)
	DeleteCatalog(name string) error
	Close() error
}

var (
	ErrCatalogNotFound = fmt.Errorf("catalog not found")
)
