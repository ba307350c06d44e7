package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/roviahq/rovia/internal/adapters/source"
	"github.com/roviahq/rovia/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStaticSource(t *testing.T) {
	Convey("Given the default static source", t, func() {
		s := source.NewStaticSource()
		ctx := context.Background()

		Convey("When fetching candidates twice", func() {
			first, err := s.Candidates(ctx)
			So(err, ShouldBeNil)
			second, err := s.Candidates(ctx)
			So(err, ShouldBeNil)

			Convey("Then each call should get an independent copy", func() {
				So(len(first), ShouldBeGreaterThan, 0)
				first[0].Name = "mutated"
				So(second[0].Name, ShouldNotEqual, "mutated")
			})
		})

		Convey("When constructed with explicit candidates", func() {
			custom := source.NewStaticSource(model.Candidate{ID: 9, Name: "Solo", Category: "wash", Open: "08:00", Close: "20:00"})
			got, err := custom.Candidates(ctx)

			Convey("Then only those should be served", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got[0].ID, ShouldEqual, 9)
			})
		})
	})
}

func TestYAMLSource(t *testing.T) {
	Convey("Given catalog files on disk", t, func() {
		dir := t.TempDir()
		write := func(name, content string) string {
			path := filepath.Join(dir, name)
			So(os.WriteFile(path, []byte(content), 0o644), ShouldBeNil)
			return path
		}

		Convey("When loading a valid catalog", func() {
			path := write("good.yaml", `
candidates:
  - id: 1
    name: CleanCar Wash
    category: wash
    lat: 52.53
    lng: 13.40
    rating: 4.5
    open: "08:00"
    close: "20:00"
  - id: 2
    name: QuickFix Garage
    category: maintenance
    lat: 52.54
    lng: 13.42
    rating: 4.2
    open: "07:30"
    close: "18:00"
`)
			s, err := source.NewYAMLSource(path)

			Convey("Then candidates should load with their windows intact", func() {
				So(err, ShouldBeNil)
				got, err := s.Candidates(context.Background())
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[0].Name, ShouldEqual, "CleanCar Wash")
				So(got[1].Open, ShouldEqual, "07:30")
			})
		})

		Convey("When the file is missing", func() {
			_, err := source.NewYAMLSource(filepath.Join(dir, "nope.yaml"))

			Convey("Then the not-found kind should surface", func() {
				So(err, ShouldWrap, source.ErrCatalogNotFound)
			})
		})

		Convey("When a candidate has a malformed closing time", func() {
			path := write("badtime.yaml", `
candidates:
  - id: 1
    name: Broken
    category: wash
    open: "08:00"
    close: "25:99"
`)
			_, err := source.NewYAMLSource(path)

			Convey("Then validation should reject the catalog", func() {
				So(err, ShouldWrap, source.ErrInvalidCatalog)
				So(err.Error(), ShouldContainSubstring, "25:99")
			})
		})

		Convey("When two candidates share an id", func() {
			path := write("dup.yaml", `
candidates:
  - id: 1
    name: First
    category: wash
    open: "08:00"
    close: "20:00"
  - id: 1
    name: Second
    category: wash
    open: "08:00"
    close: "20:00"
`)
			_, err := source.NewYAMLSource(path)

			Convey("Then validation should reject the duplicate", func() {
				So(err, ShouldWrap, source.ErrInvalidCatalog)
				So(err.Error(), ShouldContainSubstring, "duplicate")
			})
		})

		Convey("When the catalog is empty", func() {
			path := write("empty.yaml", "candidates: []\n")
			_, err := source.NewYAMLSource(path)

			Convey("Then validation should reject it", func() {
				So(err, ShouldWrap, source.ErrInvalidCatalog)
			})
		})
	})
}
