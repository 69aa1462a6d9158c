// Package app wires the bot together and runs it.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/rick850103/dobby-reminder-bot/internal/bot"
	"github.com/rick850103/dobby-reminder-bot/internal/config"
	"github.com/rick850103/dobby-reminder-bot/internal/line"
	"github.com/rick850103/dobby-reminder-bot/internal/reminder"
	"github.com/rick850103/dobby-reminder-bot/internal/server"
)

// Run constructs every dependency from the configuration file and serves
// until the HTTP listener stops.
func Run(cfgFilename string) error {
	cfg, err := config.Read(cfgFilename)
	if err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
	}
	log.WithField("addr", cfg.Redis.Addr).Info("connected to redis")

	lineClient, err := line.New(cfg.Line.Secret, cfg.Line.Token)
	if err != nil {
		return err
	}

	store := reminder.NewRedisStore(rdb)
	intake := bot.NewIntake(store, lineClient)
	sweeper := bot.NewSweeper(store, lineClient)

	gin.SetMode(gin.ReleaseMode)
	router := server.New(lineClient, intake, sweeper)

	log.WithField("listen", cfg.HTTP.Listen).Info("dobby is listening")
	if err := router.Run(cfg.HTTP.Listen); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
