package ranking

import (
	"sort"

	"github.com/partnerkit/adcatalog/internal/models"
)

// Result is one category ranking. Ranked is ordered by descending score
// with dense 1-based ranks. The best-for picks are nil when no entity
// qualifies; they are never defaulted to a placeholder entity.
type Result struct {
	Category models.CategoryKey    `json:"category"`
	Ranked   []models.RankedEntity `json:"ranked"`
	// BestOverall is the rank-1 entity.
	BestOverall *models.RankedEntity `json:"best_overall,omitempty"`
	// BestForBeginners is the qualifying entity with the lowest minimum
	// entry cost.
	BestForBeginners *models.RankedEntity `json:"best_for_beginners,omitempty"`
}

// Build filters entities to those belonging to the category with a usable
// score, sorts them and derives the editorial picks.
//
// Ties keep the original fetch order (stable sort); the upstream backend
// defines no secondary tie-break, so none is invented here. First-seen
// wins the earlier rank.
func Build(entities []models.Entity, key models.CategoryKey) Result {
	res := Result{Category: key}

	// Score once per entity; the sort below must not recompute.
	type scored struct {
		entity models.Entity
		score  float64
	}
	qualifying := make([]scored, 0, len(entities))
	for _, e := range entities {
		if !e.MemberOf(key) {
			continue
		}
		s := Score(e, key)
		if s <= 0 {
			// Unrated entities are "not yet ranked", not ranked last.
			continue
		}
		qualifying = append(qualifying, scored{entity: e, score: s})
	}

	if len(qualifying) == 0 {
		res.Ranked = []models.RankedEntity{}
		return res
	}

	// Pick the beginner entity before sorting: ties on the entry cost keep
	// the original fetch order, same rule as the score tie-break.
	beginnerSlug := qualifying[0].entity.Slug
	lowestCost := qualifying[0].entity.MinPayout
	for _, q := range qualifying[1:] {
		if q.entity.MinPayout < lowestCost {
			lowestCost = q.entity.MinPayout
			beginnerSlug = q.entity.Slug
		}
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		return qualifying[i].score > qualifying[j].score
	})

	res.Ranked = make([]models.RankedEntity, len(qualifying))
	for i, q := range qualifying {
		res.Ranked[i] = models.RankedEntity{
			Entity: q.entity,
			Score:  q.score,
			Rank:   i + 1,
		}
	}

	res.BestOverall = &res.Ranked[0]
	for i := range res.Ranked {
		if res.Ranked[i].Entity.Slug == beginnerSlug {
			res.BestForBeginners = &res.Ranked[i]
			break
		}
	}

	return res
}
