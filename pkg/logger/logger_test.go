package logger_test

import (
	"context"
	"testing"
	"time"

	"github.com/roviahq/rovia/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		err := logger.Init()
		So(err, ShouldBeNil)

		Convey("When getting the global logger", func() {
			l := logger.Get()

			Convey("Then it should not be nil", func() {
				So(l, ShouldNotBeNil)
			})

			Convey("And logging at every level should not panic", func() {
				ctx := context.Background()
				So(func() {
					l.Debug(ctx, "debug message", logger.String("k", "v"))
					l.Info(ctx, "info message", logger.Int("n", 1))
					l.Warn(ctx, "warn message", logger.Float64("f", 1.5))
					l.Error(ctx, "error message", logger.Bool("b", true))
				}, ShouldNotPanic)
			})
		})

		Convey("When creating a named logger", func() {
			l := logger.Named("ranking")

			Convey("Then it should be usable", func() {
				So(l, ShouldNotBeNil)
				So(func() {
					l.Info(context.Background(), "named entry",
						logger.Duration("took", 5*time.Millisecond))
				}, ShouldNotPanic)
			})
		})

		Convey("When setting the level from a string", func() {
			Convey("Then known levels should be accepted", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				So(logger.SetLevelString("info"), ShouldBeNil)
				So(logger.SetLevelString("WARN"), ShouldBeNil)
				So(logger.SetLevelString("error"), ShouldBeNil)
				So(logger.SetLevelString(""), ShouldBeNil)
			})

			Convey("And unknown levels should be rejected", func() {
				So(logger.SetLevelString("verbose"), ShouldNotBeNil)
			})
		})
	})
}
