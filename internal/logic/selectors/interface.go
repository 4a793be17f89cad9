package selectors

import (
	"errors"

	"github.com/partnerkit/adcatalog/internal/models"
)

// ErrNoEligibleCreative signals that nothing targets the slot for this
// audience/language. The caller renders the "Advertisement" placeholder
// rather than failing.
var ErrNoEligibleCreative = errors.New("no eligible creative for slot")

// Selector defines a pluggable interface for choosing one creative per
// slot render from the slot's pool.
type Selector interface {
	ResolveSlot(store models.CatalogStore, slotKey, audience string,
		lang models.LangCode, seed int) (*models.CreativeDescriptor, error)
}
