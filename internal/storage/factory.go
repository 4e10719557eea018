package storage

import "fmt"

// NewStore opens the backend named by kind. "none" yields a nil Store.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "none":
		return nil, nil
	case "memory":
		return NewMemoryStore(), nil
	case "", "file":
		return NewFileStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}
