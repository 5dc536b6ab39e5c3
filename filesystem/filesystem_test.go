package filesystem

import (
	"io"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestBackend(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Convey("Should switch between the OS and memory", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")

			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Should accept any afero backend", func() {
			Use(afero.NewReadOnlyFs(afero.NewMemMapFs()))
			_, err := API().Create("/x")
			So(err, ShouldNotBeNil)
		})

		Convey("Store should write through the active backend", func() {
			SetMemMapFs()
			var store Store

			So(store.MkdirAll("/cache/podfetch", 0755), ShouldBeNil)
			f, err := store.OpenFile("/cache/podfetch/h.json", os.O_CREATE|os.O_WRONLY, 0644)
			So(err, ShouldBeNil)
			_, err = io.WriteString(f, "{}")
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/podfetch/h.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "{}")
		})
	})
}
