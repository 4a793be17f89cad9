package selectors

import (
	"time"

	"github.com/partnerkit/adcatalog/internal/logic/filters"
	"github.com/partnerkit/adcatalog/internal/models"
)

// RotationSelector picks creatives deterministically with seed mod pool
// size. The production seed is the calendar day of month, which rotates
// the pick daily while staying reproducible within a day; identical
// selections for identical seeds keep responses cache- and CDN-friendly.
type RotationSelector struct{}

// NewRotationSelector constructs the default selector.
func NewRotationSelector() *RotationSelector {
	return &RotationSelector{}
}

// DaySeed returns the rotation seed for the given moment: the calendar
// day of month.
func DaySeed(t time.Time) int {
	return t.Day()
}

// ResolveSlot filters the slot's pool by audience and language, then picks
// one creative by seed mod count. Pool order is the upstream fetch order.
func (RotationSelector) ResolveSlot(store models.CatalogStore, slotKey, audience string,
	lang models.LangCode, seed int) (*models.CreativeDescriptor, error) {

	pool := store.CreativesForSlot(slotKey)
	eligible := filters.Eligible(pool, audience, lang)
	if len(eligible) == 0 {
		return nil, ErrNoEligibleCreative
	}

	idx := seed % len(eligible)
	if idx < 0 {
		idx += len(eligible)
	}
	desc := eligible[idx].Descriptor()
	return &desc, nil
}
