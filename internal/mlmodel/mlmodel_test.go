package mlmodel_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roviahq/rovia/internal/mlmodel"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLRModel(t *testing.T) {
	Convey("Given a logistic regression model", t, func() {
		m := mlmodel.LRModel{
			Bias: 0,
			Weights: map[string]float64{
				"f_rating_norm": 2.0,
				"f_open_now":    1.0,
			},
		}

		Convey("When predicting with zero inputs", func() {
			p := m.Predict(map[string]float64{"f_rating_norm": 0, "f_open_now": 0})

			Convey("Then the probability should be exactly 0.5", func() {
				So(p, ShouldAlmostEqual, 0.5)
			})
		})

		Convey("When predicting with positive evidence", func() {
			p := m.Predict(map[string]float64{"f_rating_norm": 1, "f_open_now": 1})

			Convey("Then the probability should rise above 0.5 but stay below 1", func() {
				So(p, ShouldBeGreaterThan, 0.5)
				So(p, ShouldBeLessThan, 1.0)
			})
		})

		Convey("When the row contains a feature without a weight", func() {
			base := m.Predict(map[string]float64{"f_rating_norm": 1})
			withStray := m.Predict(map[string]float64{"f_rating_norm": 1, "stray": 99})

			Convey("Then the stray feature should not change the prediction", func() {
				So(withStray, ShouldAlmostEqual, base)
			})
		})
	})
}

func TestArtifact(t *testing.T) {
	Convey("Given a model artifact", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "ranker.json")
		a := &mlmodel.Artifact{
			Model: mlmodel.LRModel{
				Bias:    -0.25,
				Weights: map[string]float64{"f_rating_norm": 1.5, "position": -0.2},
			},
			FeatureCols: []string{"f_rating_norm", "position"},
		}

		Convey("When saving and loading it back", func() {
			So(a.Save(path), ShouldBeNil)
			loaded, err := mlmodel.LoadArtifact(path)

			Convey("Then the round trip should preserve model and column order", func() {
				So(err, ShouldBeNil)
				So(loaded.Model.Bias, ShouldAlmostEqual, a.Model.Bias)
				So(loaded.Model.Weights, ShouldResemble, a.Model.Weights)
				So(loaded.FeatureCols, ShouldResemble, a.FeatureCols)
			})
		})

		Convey("When loading a corrupt artifact", func() {
			So(os.WriteFile(path, []byte("{not json"), 0o644), ShouldBeNil)
			_, err := mlmodel.LoadArtifact(path)

			Convey("Then it should fail with the artifact error kind", func() {
				So(err, ShouldWrap, mlmodel.ErrBadArtifact)
			})
		})

		Convey("When loading an artifact without feature columns", func() {
			So(os.WriteFile(path, []byte(`{"model":{"bias":0,"weights":{"a":1}},"feature_cols":[]}`), 0o644), ShouldBeNil)
			_, err := mlmodel.LoadArtifact(path)

			Convey("Then it should be rejected", func() {
				So(err, ShouldWrap, mlmodel.ErrBadArtifact)
			})
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given a registry pointed at a missing artifact", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "ranker.json")
		reg := mlmodel.NewRegistry(path)
		ctx := context.Background()

		Convey("When asking for the artifact", func() {
			_, ok := reg.Artifact(ctx)

			Convey("Then it should report no model and stick to the absent state", func() {
				So(ok, ShouldBeFalse)
				So(reg.State(), ShouldEqual, "absent")
			})

			Convey("And writing the artifact afterwards should not change the cached result", func() {
				a := &mlmodel.Artifact{
					Model:       mlmodel.LRModel{Weights: map[string]float64{"f_open_now": 1}},
					FeatureCols: []string{"f_open_now"},
				}
				So(a.Save(path), ShouldBeNil)

				_, ok := reg.Artifact(ctx)
				So(ok, ShouldBeFalse)

				Convey("Until an explicit reload", func() {
					So(reg.Reload(ctx), ShouldBeNil)
					loaded, ok := reg.Artifact(ctx)
					So(ok, ShouldBeTrue)
					So(loaded.FeatureCols, ShouldResemble, []string{"f_open_now"})
					So(reg.State(), ShouldEqual, "loaded")
				})
			})
		})

		Convey("When reloading with no artifact present", func() {
			err := reg.Reload(ctx)

			Convey("Then it should return the no-model kind", func() {
				So(err, ShouldWrap, mlmodel.ErrNoModel)
			})
		})
	})

	Convey("Given a registry pointed at an existing artifact", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "ranker.json")
		a := &mlmodel.Artifact{
			Model:       mlmodel.LRModel{Bias: 0.1, Weights: map[string]float64{"hour": 0.05}},
			FeatureCols: []string{"hour"},
		}
		So(a.Save(path), ShouldBeNil)

		reg := mlmodel.NewRegistry(path)

		Convey("When asking for the artifact twice", func() {
			first, ok1 := reg.Artifact(context.Background())
			second, ok2 := reg.Artifact(context.Background())

			Convey("Then the same cached artifact should be returned", func() {
				So(ok1, ShouldBeTrue)
				So(ok2, ShouldBeTrue)
				So(first, ShouldEqual, second)
			})
		})
	})
}
