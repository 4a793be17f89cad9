package ranking

import (
	"testing"

	"github.com/partnerkit/adcatalog/internal/models"
)

func adNetwork(slug string, format models.CategoryKey, overall, minPayout float64) models.Entity {
	return models.Entity{
		Slug:      slug,
		Kind:      models.KindAdNetwork,
		Name:      slug,
		MinPayout: minPayout,
		Formats:   []models.CategoryKey{format},
		FormatRatings: map[models.CategoryKey]models.FormatRating{
			format: {Overall: overall},
		},
	}
}

func TestBuildRanking(t *testing.T) {
	entities := []models.Entity{
		adNetwork("evadav", "webPush", 4.8, 25),
		adNetwork("newcomer", "webPush", 0, 10),
		adNetwork("richads", "webPush", 4.2, 100),
	}

	res := Build(entities, "webPush")

	if len(res.Ranked) != 2 {
		t.Fatalf("expected 2 ranked entities, got %d", len(res.Ranked))
	}
	if res.Ranked[0].Entity.Slug != "evadav" || res.Ranked[0].Rank != 1 || res.Ranked[0].Score != 4.8 {
		t.Errorf("rank 1: got %+v", res.Ranked[0])
	}
	if res.Ranked[1].Entity.Slug != "richads" || res.Ranked[1].Rank != 2 || res.Ranked[1].Score != 4.2 {
		t.Errorf("rank 2: got %+v", res.Ranked[1])
	}
	for _, r := range res.Ranked {
		if r.Entity.Slug == "newcomer" {
			t.Error("unrated entity must be excluded, not ranked last")
		}
	}
	if res.BestOverall == nil || res.BestOverall.Entity.Slug != "evadav" {
		t.Errorf("best overall: got %+v", res.BestOverall)
	}
	if res.BestForBeginners == nil || res.BestForBeginners.Entity.Slug != "evadav" {
		t.Errorf("best for beginners (lowest payout 25): got %+v", res.BestForBeginners)
	}
}

func TestBuildRankDensityAndOrder(t *testing.T) {
	entities := []models.Entity{
		adNetwork("a", "pop", 3.1, 50),
		adNetwork("b", "pop", 4.9, 50),
		adNetwork("c", "pop", 0, 50),
		adNetwork("d", "pop", 4.0, 50),
		adNetwork("e", "pop", 2.2, 50),
	}

	res := Build(entities, "pop")

	if len(res.Ranked) != 4 {
		t.Fatalf("expected 4 ranked entities, got %d", len(res.Ranked))
	}
	for i, r := range res.Ranked {
		if r.Rank != i+1 {
			t.Errorf("ranks must be dense 1..n: position %d has rank %d", i, r.Rank)
		}
		if i > 0 && res.Ranked[i-1].Score < r.Score {
			t.Errorf("scores must be non-increasing: %v before %v", res.Ranked[i-1].Score, r.Score)
		}
	}
}

func TestBuildTieBreakKeepsFetchOrder(t *testing.T) {
	// No secondary tie-break exists: equal scores keep their original
	// fetch order, first-seen takes the earlier rank.
	entities := []models.Entity{
		adNetwork("first", "native", 4.5, 30),
		adNetwork("second", "native", 4.5, 30),
		adNetwork("third", "native", 4.5, 30),
	}

	res := Build(entities, "native")

	want := []string{"first", "second", "third"}
	for i, slug := range want {
		if res.Ranked[i].Entity.Slug != slug {
			t.Errorf("position %d: expected %s, got %s", i, slug, res.Ranked[i].Entity.Slug)
		}
	}
	// Beginner pick ties also resolve to the first-seen entity.
	if res.BestForBeginners.Entity.Slug != "first" {
		t.Errorf("beginner tie: expected first, got %s", res.BestForBeginners.Entity.Slug)
	}
}

func TestBuildEmptyCategory(t *testing.T) {
	entities := []models.Entity{
		adNetwork("a", "webPush", 4.8, 25),
		adNetwork("b", "pop", 0, 25),
	}

	res := Build(entities, "inApp")

	if len(res.Ranked) != 0 {
		t.Errorf("expected empty ranking, got %d entries", len(res.Ranked))
	}
	if res.BestOverall != nil || res.BestForBeginners != nil {
		t.Error("best-for picks must be absent for an empty category")
	}
}

func TestBuildSingleEntity(t *testing.T) {
	res := Build([]models.Entity{adNetwork("solo", "webPush", 3.7, 5)}, "webPush")

	if len(res.Ranked) != 1 || res.Ranked[0].Rank != 1 {
		t.Fatalf("expected a single rank-1 entry, got %+v", res.Ranked)
	}
	if res.BestOverall == nil || res.BestOverall.Entity.Slug != "solo" {
		t.Error("single qualifier must be best overall")
	}
	if res.BestForBeginners == nil || res.BestForBeginners.Entity.Slug != "solo" {
		t.Error("single qualifier must be best for beginners")
	}
}

func TestBuildBeginnerPickLowestEntryCost(t *testing.T) {
	entities := []models.Entity{
		adNetwork("pricey", "pop", 4.9, 500),
		adNetwork("cheap", "pop", 3.1, 10),
		adNetwork("mid", "pop", 4.0, 100),
	}

	res := Build(entities, "pop")

	if res.BestOverall.Entity.Slug != "pricey" {
		t.Errorf("best overall: expected pricey, got %s", res.BestOverall.Entity.Slug)
	}
	if res.BestForBeginners.Entity.Slug != "cheap" {
		t.Errorf("best for beginners: expected cheap, got %s", res.BestForBeginners.Entity.Slug)
	}
	// The beginner pick carries its real rank from the ordered list.
	if res.BestForBeginners.Rank != 3 {
		t.Errorf("beginner pick rank: expected 3, got %d", res.BestForBeginners.Rank)
	}
}

func TestBuildMixedKinds(t *testing.T) {
	// CPA networks rank through the same pipeline using the dimension mean.
	entities := []models.Entity{
		{
			Slug: "leadbit", Kind: models.KindCPANetwork,
			Verticals: []models.CategoryKey{"dating"},
			Ratings:   models.DimensionRatings{Support: 5, Offers: 4, PromoMaterials: 4, Rates: 5},
		},
		{
			Slug: "unranked", Kind: models.KindCPANetwork,
			Verticals: []models.CategoryKey{"dating"},
		},
		{
			Slug: "adsterra-cpa", Kind: models.KindCPANetwork,
			Verticals: []models.CategoryKey{"dating", "gambling"},
			Ratings:   models.DimensionRatings{Support: 3, Offers: 3, PromoMaterials: 3, Rates: 3},
		},
	}

	res := Build(entities, "dating")

	if len(res.Ranked) != 2 {
		t.Fatalf("expected 2 ranked CPA networks, got %d", len(res.Ranked))
	}
	if res.Ranked[0].Entity.Slug != "leadbit" || res.Ranked[0].Score != 4.5 {
		t.Errorf("rank 1: got %+v", res.Ranked[0])
	}

	gambling := Build(entities, "gambling")
	if len(gambling.Ranked) != 1 || gambling.Ranked[0].Entity.Slug != "adsterra-cpa" {
		t.Errorf("multi-category membership: got %+v", gambling.Ranked)
	}
}
