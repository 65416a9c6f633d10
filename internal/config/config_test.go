package config_test

import (
	"errors"
	"testing"

	"github.com/okian/boardscore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DefaultPlayers, convey.ShouldEqual, 5)
			convey.So(cfg.SheetTTL().Hours(), convey.ShouldEqual, 12)
		})

		convey.Convey("And it should pass validation", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a config with an unknown log format", t, func() {
		cfg := config.New()
		cfg.LogFormat = "xml"

		convey.Convey("Then validation should fail", func() {
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a default player count outside the bounds", t, func() {
		cfg := config.New()
		cfg.DefaultPlayers = 9

		convey.Convey("Then validation should fail", func() {
			convey.So(cfg.Validate(), convey.ShouldNotBeNil)
		})
	})
}
