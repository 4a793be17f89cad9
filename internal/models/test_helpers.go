package models

// NewTestCatalogStore creates a new in-memory catalog store for testing
func NewTestCatalogStore() CatalogStore {
	return NewInMemoryCatalogStore()
}
