package feature_test

import (
	"testing"

	"github.com/roviahq/rovia/internal/domain/feature"
	"github.com/roviahq/rovia/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMinMax(t *testing.T) {
	Convey("Given min-max normalization", t, func() {
		Convey("When the value is inside the range", func() {
			So(feature.MinMax(2.5, 0, 5), ShouldEqual, 0.5)
			So(feature.MinMax(0, 0, 5), ShouldEqual, 0)
			So(feature.MinMax(5, 0, 5), ShouldEqual, 1)
		})

		Convey("When the value is outside the range", func() {
			Convey("Then the output should be clamped to [0,1]", func() {
				So(feature.MinMax(-3, 0, 5), ShouldEqual, 0)
				So(feature.MinMax(9, 0, 5), ShouldEqual, 1)
			})
		})

		Convey("When the range is degenerate", func() {
			Convey("Then the output should be 0", func() {
				So(feature.MinMax(3, 5, 5), ShouldEqual, 0)
				So(feature.MinMax(3, 5, 1), ShouldEqual, 0)
			})
		})
	})
}

func TestDistanceCloseness(t *testing.T) {
	Convey("Given the distance-to-closeness conversion", t, func() {
		const maxKm = 25.0

		Convey("Then zero distance should score 1.0", func() {
			So(feature.DistanceCloseness(0, maxKm), ShouldEqual, 1.0)
		})

		Convey("Then max distance should score 0.0", func() {
			So(feature.DistanceCloseness(maxKm, maxKm), ShouldEqual, 0.0)
		})

		Convey("Then distances beyond the max should stay at 0.0", func() {
			So(feature.DistanceCloseness(maxKm*3, maxKm), ShouldEqual, 0.0)
		})

		Convey("Then closeness should be monotonically non-increasing", func() {
			prev := feature.DistanceCloseness(0, maxKm)
			for d := 1.0; d <= 30; d++ {
				cur := feature.DistanceCloseness(d, maxKm)
				So(cur, ShouldBeLessThanOrEqualTo, prev)
				prev = cur
			}
		})

		Convey("Then a non-positive max should score 0.0", func() {
			So(feature.DistanceCloseness(1, 0), ShouldEqual, 0.0)
		})
	})
}

func TestBuilder(t *testing.T) {
	Convey("Given a builder with default config", t, func() {
		b := feature.NewBuilder(feature.DefaultConfig())

		Convey("When building features for an available candidate", func() {
			c := model.RankedCandidate{
				Candidate:  model.Candidate{Rating: 4.5},
				DistanceKm: 2.0,
				Available:  true,
			}
			feats := b.Build(c)

			Convey("Then exactly three features should be produced", func() {
				So(len(feats), ShouldEqual, 3)
				So(feats[feature.NameRatingNorm], ShouldEqual, 0.9)
				So(feats[feature.NameDistanceCloseness], ShouldAlmostEqual, 1.0-2.0/25.0)
				So(feats[feature.NameOpenNow], ShouldEqual, 1.0)
			})

			Convey("And all features should lie in [0,1]", func() {
				for _, v := range feats {
					So(v, ShouldBeBetweenOrEqual, 0, 1)
				}
			})
		})

		Convey("When the candidate is unavailable with unknown distance", func() {
			c := model.RankedCandidate{
				Candidate:  model.Candidate{Rating: 3.0},
				DistanceKm: -1,
				Available:  false,
			}
			feats := b.Build(c)

			Convey("Then the open flag should be 0 and closeness should bottom out", func() {
				So(feats[feature.NameOpenNow], ShouldEqual, 0.0)
				So(feats[feature.NameDistanceCloseness], ShouldEqual, 0.0)
			})
		})

		Convey("When scoring a feature vector", func() {
			feats := model.FeatureVector{
				feature.NameRatingNorm:        0.9,
				feature.NameDistanceCloseness: 0.92,
				feature.NameOpenNow:           1.0,
			}
			score := b.Score(feats)

			Convey("Then the score should be the weighted sum", func() {
				So(score, ShouldAlmostEqual, 0.9*2.0+0.92*1.0+1.0*0.5)
			})
		})
	})
}
