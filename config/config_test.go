package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should register every defined field", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("Calendar window should default to a week", func() {
			_ = Setup()
			So(viper.GetInt(key.CalendarDefaultDays), ShouldEqual, 7)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("metadata.fetch_ratings")
			So(result, ShouldEqual, "metadata_fetch_ratings")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field Env", t, func() {
		f := Default[key.TraktClientID]
		So(f.Env(), ShouldEqual, "TRAKR_TRAKT_CLIENT_ID")
	})
}
