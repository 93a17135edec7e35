package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/okian/arena/internal/arenacheck"
	"github.com/okian/arena/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseMode(t *testing.T) {
	convey.Convey("Given mode flags", t, func() {
		m, err := parseMode("computed")
		convey.So(err, convey.ShouldBeNil)
		convey.So(m, convey.ShouldEqual, model.ModeComputed)

		m, err = parseMode("preAggregated")
		convey.So(err, convey.ShouldBeNil)
		convey.So(m, convey.ShouldEqual, model.ModePreAggregated)

		_, err = parseMode("weekly")
		convey.So(errors.Is(err, arenacheck.ErrInvalidConfig), convey.ShouldBeTrue)
	})
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		root := newRootCmd()

		convey.Convey("Then it should expose both subcommands", func() {
			var names []string
			for _, c := range root.Commands() {
				names = append(names, c.Name())
			}
			convey.So(names, convey.ShouldContain, "fixtures")
			convey.So(names, convey.ShouldContain, "verify")
		})

		convey.Convey("Then fixtures should reject an unknown mode", func() {
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(&out)
			root.SetArgs([]string{"fixtures", "--mode", "weekly"})
			err := root.Execute()
			convey.So(errors.Is(err, arenacheck.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
