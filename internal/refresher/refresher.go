package refresher

import (
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher periodically nudges connected dashboards to re-fetch their report
// lists, covering clients that miss an individual lifecycle broadcast.
type Refresher struct {
	hub  interface{ GetBroadcast() chan []byte }
	cron *cron.Cron
	log  *logrus.Logger
}

func New(hub interface{ GetBroadcast() chan []byte }, log *logrus.Logger) *Refresher {
	return &Refresher{
		hub:  hub,
		cron: cron.New(cron.WithSeconds()),
		log:  log,
	}
}

// Start schedules the refresh tick. The default cadence is every 10 seconds,
// overridable with a full cron spec via REFRESH_SPEC.
func (r *Refresher) Start(spec string) error {
	if spec == "" {
		spec = "*/10 * * * * *"
	}
	if _, err := r.cron.AddFunc(spec, r.tick); err != nil {
		return err
	}
	r.cron.Start()
	r.log.WithField("spec", spec).Info("dashboard refresher started")
	return nil
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) tick() {
	msg, err := json.Marshal(map[string]interface{}{
		"event": "dashboard.refresh",
		"at":    time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	select {
	case r.hub.GetBroadcast() <- msg:
	default:
		// no listeners or slow hub; skip this tick
	}
}
