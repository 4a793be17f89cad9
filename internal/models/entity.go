package models

// EntityKind discriminates the three catalog kinds. Each kind carries its
// own rating shape and category-membership field, but all three rank
// through the same pipeline.
type EntityKind string

const (
	KindAdNetwork  EntityKind = "ad-network"
	KindCPANetwork EntityKind = "cpa-network"
	KindService    EntityKind = "service"
)

// Valid reports whether k is one of the known catalog kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case KindAdNetwork, KindCPANetwork, KindService:
		return true
	}
	return false
}

// CategoryKey selects a sub-ranking of a catalog: an ad format for ad
// networks ("webPush", "popunder"), a vertical for CPA networks ("dating",
// "gambling"), or a service type for tool vendors ("tracker", "spy").
type CategoryKey string

// FormatRating is the per-format rating bundle of an ad network.
// Values are on a 1-5 scale; 0 means "not yet rated".
type FormatRating struct {
	Overall   float64 `json:"overall"`
	Stability float64 `json:"stability"`
	Support   float64 `json:"support"`
}

// DimensionRatings is the fixed rating set shared by CPA networks and
// services. As with FormatRating, 0 means unrated, not lowest.
type DimensionRatings struct {
	Support        float64 `json:"support"`
	Offers         float64 `json:"offers"`
	PromoMaterials float64 `json:"promo_materials"`
	Rates          float64 `json:"rates"`
}

// Values returns the dimensions in a fixed order for aggregation.
func (d DimensionRatings) Values() []float64 {
	return []float64{d.Support, d.Offers, d.PromoMaterials, d.Rates}
}

// Entity is one catalog record: an ad network, CPA network or service.
// Records are authored in the external content backend and are read-only
// here; localized fields keep their per-language variants intact until a
// handler resolves them for a concrete display language.
type Entity struct {
	// Slug is the entity's unique identifier within its catalog.
	Slug string     `json:"slug"`
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`

	Description Localized[string]   `json:"description,omitempty"`
	Pros        Localized[[]string] `json:"pros,omitempty"`

	Website string `json:"website,omitempty"`
	// MinPayout is the minimum entry cost in USD (payout threshold or
	// minimum deposit). Drives the "best for beginners" pick.
	MinPayout float64 `json:"min_payout"`

	// Ad network fields.
	Formats       []CategoryKey                `json:"formats,omitempty"`
	FormatRatings map[CategoryKey]FormatRating `json:"format_ratings,omitempty"`

	// CPA network / service fields.
	Verticals    []CategoryKey    `json:"verticals,omitempty"`
	ServiceTypes []CategoryKey    `json:"service_types,omitempty"`
	Ratings      DimensionRatings `json:"ratings"`
}

// Categories returns the entity's category memberships for its kind.
// One entity may belong to several categories at once.
func (e *Entity) Categories() []CategoryKey {
	switch e.Kind {
	case KindAdNetwork:
		return e.Formats
	case KindCPANetwork:
		return e.Verticals
	case KindService:
		return e.ServiceTypes
	}
	return nil
}

// MemberOf reports whether the entity belongs to the given category.
func (e *Entity) MemberOf(key CategoryKey) bool {
	for _, c := range e.Categories() {
		if c == key {
			return true
		}
	}
	return false
}

// RankedEntity is a derived, ephemeral ranking entry. Never persisted;
// recomputed on every ranking request.
type RankedEntity struct {
	Entity Entity  `json:"entity"`
	Score  float64 `json:"score"`
	// Rank is the dense 1-based position by descending score.
	Rank int `json:"rank"`
}
