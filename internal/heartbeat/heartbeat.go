// Package heartbeat keeps a free-tier hosting instance warm by pinging
// the service's own public URL on a schedule. Operationally useful,
// correctness-irrelevant.
package heartbeat

import (
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
)

var client = &http.Client{Timeout: 15 * time.Second}

// Start schedules a self-ping every 14 minutes (hosting providers idle
// instances out after 15). Returns nil when no URL is configured.
func Start(selfURL string) *cron.Cron {
	if selfURL == "" {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc("@every 14m", func() {
		resp, err := client.Get(selfURL)
		if err != nil {
			log.Printf("Keep-alive ping failed: %v", err)
			return
		}
		resp.Body.Close()
		log.Println("Keep-alive ping sent.")
	})
	if err != nil {
		log.Printf("Failed to schedule keep-alive ping: %v", err)
		return nil
	}

	c.Start()
	return c
}
