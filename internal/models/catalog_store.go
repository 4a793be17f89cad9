package models

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrNotFound is returned when a record is not present in the catalog store.
var ErrNotFound = errors.New("record not found")

// CatalogStore provides thread-safe access to the fetched catalog without
// global variables. Reads are the hot path; writes happen only on reload
// and swap a full snapshot atomically, so handlers never observe a
// partially-loaded catalog.
type CatalogStore interface {
	// Read operations (hot path)
	GetEntity(slug string) *Entity
	EntitiesByKind(kind EntityKind) []Entity
	AllEntities() []Entity
	CreativesForSlot(slotKey string) []Creative
	AllCreatives() []Creative

	// Write operations (reload path)
	SetEntities(entities []Entity) error
	SetCreatives(creatives []Creative) error

	// ReloadAll replaces the whole catalog in one snapshot swap.
	ReloadAll(entities []Entity, creatives []Creative) error
}

// catalogSnapshot is an immutable view of all catalog data.
type catalogSnapshot struct {
	entities       []Entity
	entityBySlug   map[string]*Entity
	entityByKind   map[EntityKind][]Entity
	creatives      []Creative
	creativeBySlot map[string][]Creative
}

func buildSnapshot(entities []Entity, creatives []Creative) (*catalogSnapshot, error) {
	snap := &catalogSnapshot{
		entities:       make([]Entity, len(entities)),
		entityBySlug:   make(map[string]*Entity, len(entities)),
		entityByKind:   make(map[EntityKind][]Entity),
		creatives:      make([]Creative, len(creatives)),
		creativeBySlot: make(map[string][]Creative),
	}
	copy(snap.entities, entities)
	copy(snap.creatives, creatives)

	for i := range snap.entities {
		e := &snap.entities[i]
		if e.Slug == "" {
			return nil, fmt.Errorf("entity %d has empty slug", i)
		}
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("entity %s has unknown kind %q", e.Slug, e.Kind)
		}
		if _, dup := snap.entityBySlug[e.Slug]; dup {
			return nil, fmt.Errorf("duplicate entity slug %s", e.Slug)
		}
		snap.entityBySlug[e.Slug] = e
		snap.entityByKind[e.Kind] = append(snap.entityByKind[e.Kind], *e)
	}

	for i := range snap.creatives {
		c := &snap.creatives[i]
		if c.SlotKey == "" {
			return nil, fmt.Errorf("creative %s has empty slot key", c.Slug)
		}
		if c.DestinationURL == "" {
			return nil, fmt.Errorf("creative %s has empty destination url", c.Slug)
		}
		// Pool order within a slot follows fetch order; the rotation rule
		// depends on it being preserved here.
		snap.creativeBySlot[c.SlotKey] = append(snap.creativeBySlot[c.SlotKey], *c)
	}

	return snap, nil
}

// InMemoryCatalogStore implements CatalogStore with atomic snapshot swaps.
type InMemoryCatalogStore struct {
	data atomic.Pointer[catalogSnapshot]
}

// NewInMemoryCatalogStore creates an empty catalog store.
func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	store := &InMemoryCatalogStore{}
	store.data.Store(&catalogSnapshot{
		entityBySlug:   make(map[string]*Entity),
		entityByKind:   make(map[EntityKind][]Entity),
		creativeBySlot: make(map[string][]Creative),
	})
	return store
}

// GetEntity retrieves an entity by slug, or nil when absent.
func (s *InMemoryCatalogStore) GetEntity(slug string) *Entity {
	data := s.data.Load()
	if e, ok := data.entityBySlug[slug]; ok {
		return e
	}
	return nil
}

// EntitiesByKind returns all entities of one kind in fetch order.
func (s *InMemoryCatalogStore) EntitiesByKind(kind EntityKind) []Entity {
	data := s.data.Load()
	if items, ok := data.entityByKind[kind]; ok {
		result := make([]Entity, len(items))
		copy(result, items)
		return result
	}
	return nil
}

// AllEntities returns every catalog entity in fetch order.
func (s *InMemoryCatalogStore) AllEntities() []Entity {
	data := s.data.Load()
	result := make([]Entity, len(data.entities))
	copy(result, data.entities)
	return result
}

// CreativesForSlot returns the creative pool targeting a slot, preserving
// fetch order.
func (s *InMemoryCatalogStore) CreativesForSlot(slotKey string) []Creative {
	data := s.data.Load()
	if cs, ok := data.creativeBySlot[slotKey]; ok {
		result := make([]Creative, len(cs))
		copy(result, cs)
		return result
	}
	return nil
}

// AllCreatives returns every creative in fetch order.
func (s *InMemoryCatalogStore) AllCreatives() []Creative {
	data := s.data.Load()
	result := make([]Creative, len(data.creatives))
	copy(result, data.creatives)
	return result
}

// SetEntities replaces the entity set, keeping current creatives.
func (s *InMemoryCatalogStore) SetEntities(entities []Entity) error {
	cur := s.data.Load()
	snap, err := buildSnapshot(entities, cur.creatives)
	if err != nil {
		return err
	}
	s.data.Store(snap)
	return nil
}

// SetCreatives replaces the creative pool, keeping current entities.
func (s *InMemoryCatalogStore) SetCreatives(creatives []Creative) error {
	cur := s.data.Load()
	snap, err := buildSnapshot(cur.entities, creatives)
	if err != nil {
		return err
	}
	s.data.Store(snap)
	return nil
}

// ReloadAll atomically replaces the entire catalog.
func (s *InMemoryCatalogStore) ReloadAll(entities []Entity, creatives []Creative) error {
	snap, err := buildSnapshot(entities, creatives)
	if err != nil {
		return err
	}
	s.data.Store(snap)
	return nil
}
