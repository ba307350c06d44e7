package parts_test

import (
	"context"
	"testing"

	"github.com/roviahq/rovia/internal/domain/parts"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSubstringMatcher(t *testing.T) {
	Convey("Given the default matcher and a catalog part", t, func() {
		m := parts.NewSubstringMatcher()
		pads := parts.Part{
			ID:          1,
			Name:        "Brake Pads Front",
			Description: "Ceramic brake pads for BMW E90",
			Brand:       "Bosch",
			Category:    "brakes",
		}

		Convey("When the query hits the name and description", func() {
			score := m.Score("brake", pads)

			Convey("Then both fields should contribute", func() {
				So(score, ShouldAlmostEqual, 3.0)
			})
		})

		Convey("When the query names the brand exactly", func() {
			Convey("Then the brand bonus should apply", func() {
				So(m.Score("bosch", pads), ShouldAlmostEqual, 1.5)
			})
		})

		Convey("When casing differs", func() {
			Convey("Then matching should be case-insensitive", func() {
				So(m.Score("BRAKE", pads), ShouldAlmostEqual, m.Score("brake", pads))
			})
		})

		Convey("When the query is unrelated or empty", func() {
			So(m.Score("windshield", pads), ShouldEqual, 0)
			So(m.Score("   ", pads), ShouldEqual, 0)
		})
	})
}

func TestSearcher(t *testing.T) {
	Convey("Given a searcher over the default catalog", t, func() {
		s := parts.NewSearcher(parts.DefaultCatalog())
		ctx := context.Background()

		Convey("When searching for brakes", func() {
			results := s.Search(ctx, "brake")

			Convey("Then only matching parts should return, most relevant first", func() {
				So(len(results), ShouldEqual, 2)
				for i := 1; i < len(results); i++ {
					So(results[i-1].Score, ShouldBeGreaterThanOrEqualTo, results[i].Score)
				}
				for _, r := range results {
					So(r.Category, ShouldEqual, "brakes")
				}
			})
		})

		Convey("When no part matches", func() {
			Convey("Then the result should be empty, not an error", func() {
				So(s.Search(ctx, "flux capacitor"), ShouldBeEmpty)
			})
		})
	})
}

func TestFilters(t *testing.T) {
	Convey("Given a scored result set", t, func() {
		s := parts.NewSearcher(parts.DefaultCatalog())
		results := s.Search(context.Background(), "filter brake")

		Convey("When filtering by category", func() {
			got := parts.Filters{Category: "Engine"}.Apply(results)

			Convey("Then matching should be case-insensitive", func() {
				So(len(got), ShouldBeGreaterThan, 0)
				for _, p := range got {
					So(p.Category, ShouldEqual, "engine")
				}
			})
		})

		Convey("When filtering by price band", func() {
			lo, hi := 15.0, 100.0
			got := parts.Filters{MinPrice: &lo, MaxPrice: &hi}.Apply(results)

			Convey("Then only parts inside the band should remain", func() {
				for _, p := range got {
					So(p.Price, ShouldBeBetweenOrEqual, lo, hi)
				}
			})
		})

		Convey("When filtering by stock", func() {
			inStock := true
			got := parts.Filters{InStock: &inStock}.Apply(results)

			Convey("Then out-of-stock parts should drop", func() {
				for _, p := range got {
					So(p.InStock, ShouldBeTrue)
				}
			})
		})

		Convey("When no filter is active", func() {
			Convey("Then everything should pass through", func() {
				So(len(parts.Filters{}.Apply(results)), ShouldEqual, len(results))
			})
		})
	})
}

func TestPaginate(t *testing.T) {
	Convey("Given eleven scored parts", t, func() {
		items := make([]parts.ScoredPart, 11)
		for i := range items {
			items[i].ID = int64(i + 1)
		}

		Convey("When requesting page 2 with size 5", func() {
			page := parts.Paginate(items, 2, 5)

			Convey("Then the slice and counters should line up", func() {
				So(page.Total, ShouldEqual, 11)
				So(page.TotalPages, ShouldEqual, 3)
				So(page.Page, ShouldEqual, 2)
				So(len(page.Items), ShouldEqual, 5)
				So(page.Items[0].ID, ShouldEqual, 6)
			})
		})

		Convey("When the requested page overshoots", func() {
			page := parts.Paginate(items, 99, 5)

			Convey("Then it should clamp to the last page", func() {
				So(page.Page, ShouldEqual, 3)
				So(len(page.Items), ShouldEqual, 1)
				So(page.Items[0].ID, ShouldEqual, 11)
			})
		})

		Convey("When the page size is out of bounds", func() {
			So(parts.Paginate(items, 1, 0).PageSize, ShouldEqual, parts.DefaultPageSize)
			So(parts.Paginate(items, 1, 500).PageSize, ShouldEqual, parts.MaxPageSize)
		})

		Convey("When the result set is empty", func() {
			page := parts.Paginate(nil, 1, 10)

			Convey("Then one empty page should come back", func() {
				So(page.Total, ShouldEqual, 0)
				So(page.TotalPages, ShouldEqual, 1)
				So(page.Items, ShouldBeEmpty)
			})
		})
	})
}
