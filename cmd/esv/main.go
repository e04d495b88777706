package main

import (
	"esv/internal/di"
	"esv/internal/structures"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "log to the console and expose validation details")
	pflag.Parse()

	app, err := di.InitApp(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to start")
	}
	if err := app.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
