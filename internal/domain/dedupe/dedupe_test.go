package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/roviahq/rovia/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()
		ctx := context.Background()

		Convey("When recording a new click key", func() {
			key := dedupe.ClickKey("r1", 42)
			seen := d.SeenAndRecord(ctx, key)

			Convey("Then it should not have been seen before", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again should report a duplicate", func() {
				So(d.SeenAndRecord(ctx, key), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And unrecording should allow a retry", func() {
				d.Unrecord(ctx, key)
				So(d.SeenAndRecord(ctx, key), ShouldBeFalse)
			})
		})

		Convey("When the same candidate is clicked under different requests", func() {
			So(d.SeenAndRecord(ctx, dedupe.ClickKey("r1", 42)), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, dedupe.ClickKey("r2", 42)), ShouldBeFalse)

			Convey("Then both should count as distinct engagements", func() {
				So(d.Size(), ShouldEqual, 2)
			})
		})

		Convey("When many goroutines record the same key", func() {
			const goroutines = 32
			var wg sync.WaitGroup
			duplicates := make(chan bool, goroutines)
			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					duplicates <- d.SeenAndRecord(ctx, "contended")
				}()
			}
			wg.Wait()
			close(duplicates)

			Convey("Then exactly one should win the race", func() {
				fresh := 0
				for dup := range duplicates {
					if !dup {
						fresh++
					}
				}
				So(fresh, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a deduper with a small bound", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
		ctx := context.Background()

		Convey("When the bound is exceeded", func() {
			for i := 0; i < 5; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i))
			}

			Convey("Then the set should stay bounded", func() {
				So(d.Size(), ShouldBeLessThanOrEqualTo, 3)
			})
		})
	})
}
