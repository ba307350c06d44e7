package geo_test

import (
	"testing"

	"github.com/roviahq/rovia/internal/domain/geo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDistance(t *testing.T) {
	Convey("Given pairs of coordinates", t, func() {
		Convey("When both points are identical", func() {
			d := geo.Distance(52.5200, 13.4050, 52.5200, 13.4050)

			Convey("Then the distance should be zero", func() {
				So(d, ShouldEqual, 0)
			})
		})

		Convey("When swapping the two points", func() {
			ab := geo.Distance(52.5200, 13.4050, 48.1374, 11.5755)
			ba := geo.Distance(48.1374, 11.5755, 52.5200, 13.4050)

			Convey("Then the distance should be symmetric", func() {
				So(ab, ShouldAlmostEqual, ba, 1e-9)
			})
		})

		Convey("When measuring Berlin to Munich", func() {
			d := geo.Distance(52.5200, 13.4050, 48.1374, 11.5755)

			Convey("Then the distance should be roughly 504 km", func() {
				So(d, ShouldBeGreaterThan, 495)
				So(d, ShouldBeLessThan, 515)
			})
		})

		Convey("When measuring two nearby points in the same city", func() {
			d := geo.Distance(52.5205, 13.4095, 52.5170, 13.4000)

			Convey("Then the distance should be under a kilometer", func() {
				So(d, ShouldBeGreaterThan, 0)
				So(d, ShouldBeLessThan, 1)
			})
		})
	})
}
