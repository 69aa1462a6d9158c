// Package server exposes the bot over HTTP: the messaging-platform webhook,
// the sweep trigger for an external cron service, and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/rick850103/dobby-reminder-bot/internal/bot"
	"github.com/rick850103/dobby-reminder-bot/internal/line"
)

// EventParser turns a raw webhook request into classified inbound events.
type EventParser interface {
	Parse(req *http.Request) ([]bot.Incoming, error)
}

// Sweeper runs one due-reminder sweep.
type Sweeper interface {
	Sweep(ctx context.Context) error
}

// New builds the HTTP router. All dependencies are injected; the router owns
// no state of its own.
func New(parser EventParser, intake *bot.Intake, sweeper Sweeper) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/webhook", webhookHandler(parser, intake))
	r.GET("/cron", cronHandler(sweeper))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func webhookHandler(parser EventParser, intake *bot.Intake) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := parser.Parse(c.Request)
		if err != nil {
			if errors.Is(err, line.ErrInvalidSignature) {
				c.String(http.StatusBadRequest, "Bad Request")
				return
			}
			log.WithError(err).Error("webhook request could not be parsed")
			c.String(http.StatusInternalServerError, "Error")
			return
		}

		failed := false
		for _, ev := range events {
			if err := intake.Handle(c.Request.Context(), ev); err != nil {
				failed = true
				log.WithError(err).Error("webhook event handling failed")
			}
		}
		if failed {
			// non-2xx makes the platform redeliver the webhook call
			c.String(http.StatusInternalServerError, "Error")
			return
		}
		c.String(http.StatusOK, "OK")
	}
}

func cronHandler(sweeper Sweeper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sweeper.Sweep(c.Request.Context()); err != nil {
			log.WithError(err).Error("sweep finished with failures")
			c.String(http.StatusInternalServerError, "cron error")
			return
		}
		c.String(http.StatusOK, "cron ok")
	}
}
