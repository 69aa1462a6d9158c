package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/rick850103/dobby-reminder-bot/internal/app"
)

func main() {
	cfgFilename := flag.String("config", "dobby.cfg", "path to the configuration file")
	flag.Parse()

	log.Info("starting dobby reminder bot")
	if err := app.Run(*cfgFilename); err != nil {
		log.WithError(err).Fatal("dobby stopped with an error")
	}
	log.Info("dobby has stopped")
}
