package rigctl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rigmate/rigmate/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func writeBuildFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBuild(t *testing.T) {
	Convey("Given a build file loader", t, func() {
		Convey("When loading a valid build", func() {
			path := writeBuildFile(t, `
usage_profile: gaming
cpu:
  id: cpu-1
  category: cpu
  manufacturer: AMD
  model: Ryzen 7 7700X
  specifications:
    socket: AM5
    tdp: 105
memory:
  - id: mem-1
    category: memory
    specifications:
      memoryType: ddr5
      capacity: 16
`)
			cfg, err := loadBuild(path)

			Convey("Then the configuration is populated", func() {
				So(err, ShouldBeNil)
				So(cfg.CPU, ShouldNotBeNil)
				So(cfg.CPU.ID, ShouldEqual, "cpu-1")
				So(cfg.CPU.Model, ShouldEqual, "Ryzen 7 7700X")
				So(cfg.Memory, ShouldHaveLength, 1)
				So(cfg.Profile(), ShouldEqual, types.ProfileGaming)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := loadBuild(filepath.Join(t.TempDir(), "missing.yaml"))

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "read build file")
			})
		})

		Convey("When the YAML is malformed", func() {
			path := writeBuildFile(t, "cpu: [not: a: part")
			_, err := loadBuild(path)

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "parse build file")
			})
		})

		Convey("When the build lists no parts", func() {
			path := writeBuildFile(t, "usage_profile: office\n")
			_, err := loadBuild(path)

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "no parts")
			})
		})
	})
}
