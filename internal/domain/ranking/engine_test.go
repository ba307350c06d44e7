package ranking_test

import (
	"context"
	"testing"
	"time"

	"github.com/roviahq/rovia/internal/domain/availability"
	"github.com/roviahq/rovia/internal/domain/feature"
	"github.com/roviahq/rovia/internal/domain/model"
	"github.com/roviahq/rovia/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	userLat = 52.5200
	userLng = 13.4050
)

func noonClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	}
}

// washCandidates returns the two-candidate scenario: candidate 1 is open and
// roughly 2 km away, candidate 2 is nearer but closed at noon.
func washCandidates() []model.Candidate {
	return []model.Candidate{
		{ID: 1, Name: "CleanCar Wash", Category: "wash", Rating: 4.5,
			Lat: userLat + 0.018, Lng: userLng, Open: "08:00", Close: "20:00"},
		{ID: 2, Name: "Night Wash", Category: "wash", Rating: 3.0,
			Lat: userLat + 0.009, Lng: userLng, Open: "14:00", Close: "20:00"},
	}
}

func newNoonEngine(cfg feature.Config) *ranking.Engine {
	return ranking.NewEngine(cfg,
		ranking.WithAvailability(availability.NewEvaluator(availability.WithClock(noonClock()))),
	)
}

func TestEngineRank(t *testing.T) {
	Convey("Given an engine with a fixed noon clock", t, func() {
		cfg := feature.DefaultConfig()
		engine := newNoonEngine(cfg)
		ctx := context.Background()

		Convey("When ranking the two wash candidates", func() {
			ranked, feats := engine.Rank(ctx, washCandidates(), userLat, userLng, "wash")

			Convey("Then the available candidate should rank first despite being farther", func() {
				So(len(ranked), ShouldEqual, 2)
				So(ranked[0].ID, ShouldEqual, 1)
				So(ranked[0].Available, ShouldBeTrue)
				So(ranked[0].Status, ShouldEqual, model.StatusOpen)
				So(ranked[1].ID, ShouldEqual, 2)
				So(ranked[1].Available, ShouldBeFalse)
				So(ranked[1].Status, ShouldEqual, model.StatusClosed)
			})

			Convey("And distances should be computed for both", func() {
				So(ranked[0].DistanceKm, ShouldBeBetween, 1.5, 2.5)
				So(ranked[1].DistanceKm, ShouldBeBetween, 0.5, 1.5)
			})

			Convey("And the feature map should cover every ranked candidate", func() {
				So(len(feats), ShouldEqual, 2)
				So(feats[1][feature.NameOpenNow], ShouldEqual, 1.0)
				So(feats[2][feature.NameOpenNow], ShouldEqual, 0.0)
			})

			Convey("And scores should follow the normalized additive formula", func() {
				want := feats[1][feature.NameRatingNorm]*cfg.WeightRating +
					feats[1][feature.NameDistanceCloseness]*cfg.WeightDistance +
					feats[1][feature.NameOpenNow]*cfg.WeightOpenNow
				So(ranked[0].Score, ShouldAlmostEqual, want)
			})
		})

		Convey("When ranking with a category nothing matches", func() {
			ranked, feats := engine.Rank(ctx, washCandidates(), userLat, userLng, "tires")

			Convey("Then the result should be empty, not an error", func() {
				So(ranked, ShouldBeEmpty)
				So(feats, ShouldBeEmpty)
			})
		})

		Convey("When more candidates match than max_results allows", func() {
			candidates := washCandidates()
			for i := int64(3); i <= 10; i++ {
				candidates = append(candidates, model.Candidate{
					ID: i, Name: "Wash", Category: "wash", Rating: 4.0,
					Lat: userLat + float64(i)*0.002, Lng: userLng,
					Open: "08:00", Close: "20:00",
				})
			}
			ranked, _ := engine.Rank(ctx, candidates, userLat, userLng, "wash")

			Convey("Then the result should be truncated to max_results", func() {
				So(len(ranked), ShouldEqual, cfg.MaxResults)
			})

			Convey("And no unavailable candidate should outrank an available one", func() {
				seenUnavailable := false
				for _, c := range ranked {
					if !c.Available {
						seenUnavailable = true
					} else {
						So(seenUnavailable, ShouldBeFalse)
					}
				}
			})
		})

		Convey("When candidates of another category are present", func() {
			candidates := append(washCandidates(), model.Candidate{
				ID: 99, Name: "Repair Shop", Category: "maintenance", Rating: 5.0,
				Lat: userLat, Lng: userLng, Open: "00:00", Close: "23:59",
			})
			ranked, _ := engine.Rank(ctx, candidates, userLat, userLng, "wash")

			Convey("Then only matching candidates should be returned", func() {
				for _, c := range ranked {
					So(c.Category, ShouldEqual, "wash")
				}
			})
		})

		Convey("When two available candidates tie on score", func() {
			tied := []model.Candidate{
				{ID: 10, Category: "wash", Rating: 4.0, Lat: userLat, Lng: userLng, Open: "08:00", Close: "20:00"},
				{ID: 11, Category: "wash", Rating: 4.0, Lat: userLat, Lng: userLng, Open: "08:00", Close: "20:00"},
			}
			ranked, _ := engine.Rank(ctx, tied, userLat, userLng, "wash")

			Convey("Then insertion order should break the tie", func() {
				So(ranked[0].ID, ShouldEqual, 10)
				So(ranked[1].ID, ShouldEqual, 11)
			})
		})
	})
}
