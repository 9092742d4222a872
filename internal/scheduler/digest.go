// Package scheduler runs the periodic monthly statement digest.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/metrics"
	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StatementSource computes the monthly statement for a date
type StatementSource interface {
	MonthlyStatement(ctx context.Context, date time.Time) (*models.MonthlyStatement, error)
	Today() time.Time
}

// Mailer delivers a statement digest
type Mailer interface {
	SendStatementDigest(to []string, st *models.MonthlyStatement) error
}

// Digest emails the monthly statement on a cron schedule
type Digest struct {
	cron    *cron.Cron
	source  StatementSource
	mailer  Mailer
	to      []string
	timeout time.Duration
	log     *logrus.Logger
}

// NewDigest schedules the digest with a standard five field cron spec
func NewDigest(spec string, source StatementSource, mailer Mailer, to []string, log *logrus.Logger) (*Digest, error) {
	d := &Digest{
		cron:    cron.New(),
		source:  source,
		mailer:  mailer,
		to:      to,
		timeout: time.Minute,
		log:     log,
	}
	if _, err := d.cron.AddFunc(spec, d.tick); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	return d, nil
}

// Start runs the scheduler in the background
func (d *Digest) Start() {
	d.cron.Start()
	d.log.Infof("Statement digest scheduled for %v", d.to)
}

// Stop halts the scheduler and waits for a running digest to finish
func (d *Digest) Stop() {
	<-d.cron.Stop().Done()
}

func (d *Digest) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.Run(ctx); err != nil {
		d.log.Errorf("Statement digest failed: %v", err)
	}
}

// Run builds today's statement and sends it
func (d *Digest) Run(ctx context.Context) error {
	st, err := d.source.MonthlyStatement(ctx, d.source.Today())
	if err != nil {
		metrics.DigestRuns.WithLabelValues("failed").Inc()
		return err
	}
	if err := d.mailer.SendStatementDigest(d.to, st); err != nil {
		metrics.DigestRuns.WithLabelValues("failed").Inc()
		return err
	}
	metrics.DigestRuns.WithLabelValues("sent").Inc()
	d.log.Infof("Statement digest for %s sent", st.Date)
	return nil
}
