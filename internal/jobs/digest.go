package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"qms-backend/internal/domain/events"
	"qms-backend/internal/platform/logger"
)

// HighRiskSource es la parte del Engine que usa el digest.
type HighRiskSource interface {
	HighRisk(ctx context.Context) ([]events.Event, error)
}

// Digest corre periódicamente la consulta high_risk y loguea el resultado.
// No llama al enriquecimiento.
type Digest struct {
	src     HighRiskSource
	log     logger.Logger
	cron    *cron.Cron
	timeout time.Duration
	now     func() time.Time
}

func NewDigest(src HighRiskSource, log logger.Logger) *Digest {
	if log == nil {
		log = logger.Nop()
	}
	return &Digest{
		src:     src,
		log:     log.With(map[string]any{"component": "digest"}),
		cron:    cron.New(),
		timeout: 30 * time.Second,
		now:     time.Now,
	}
}

// Start agenda el digest con una expresión cron estándar (5 campos).
func (d *Digest) Start(spec string) error {
	if _, err := d.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		_ = d.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("schedule digest %q: %w", spec, err)
	}
	d.cron.Start()
	d.log.Info("digest scheduled", map[string]any{"spec": spec})
	return nil
}

// Stop espera a que termine una corrida en curso o a que venza ctx.
func (d *Digest) Stop(ctx context.Context) {
	done := d.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce ejecuta una corrida.
func (d *Digest) RunOnce(ctx context.Context) error {
	items, err := d.src.HighRisk(ctx)
	if err != nil {
		d.log.Error("high-risk digest failed", map[string]any{"err": err.Error()})
		return err
	}

	ids := make([]string, 0, len(items))
	overdue := 0
	now := d.now().UTC()
	for _, e := range items {
		ids = append(ids, e.ID)
		if e.IsOverdue(now) {
			overdue++
		}
	}

	d.log.Info("high-risk digest", map[string]any{
		"count":   len(items),
		"overdue": overdue,
		"ids":     ids,
	})
	return nil
}
