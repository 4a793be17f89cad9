// Package ranking turns the catalog's per-dimension ratings into ordered
// category rankings. All three entity kinds share one pipeline: score the
// entity for a category key, drop unrated entities, stable-sort descending
// and assign dense ranks.
package ranking

import "github.com/partnerkit/adcatalog/internal/models"

// Score computes a single comparable figure for an entity in the given
// category. Ratings live on a 1-5 scale where 0 denotes "not yet rated",
// so zero dimensions are skipped rather than dragging the mean down.
// An entity with no usable dimension scores 0 and is excluded from
// rankings entirely.
func Score(e models.Entity, key models.CategoryKey) float64 {
	switch e.Kind {
	case models.KindAdNetwork:
		// Ad networks store a ready overall figure per format.
		if fr, ok := e.FormatRatings[key]; ok {
			return fr.Overall
		}
		return 0
	case models.KindCPANetwork, models.KindService:
		// Unweighted arithmetic mean across the named dimensions; no
		// dimension is privileged over another.
		var sum float64
		var n int
		for _, v := range e.Ratings.Values() {
			if v > 0 {
				sum += v
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	}
	return 0
}
