package service

import (
	"context"
	"time"
)

// MemberRefresher periodically recomputes every member's active flag from the
// recency timestamp selected by the system settings. It is the single writer
// of that flag. One bad tick is logged and skipped; the previous flags stay in
// place and the loop keeps running.
type MemberRefresher struct {
	ServiceParams
	stop chan struct{}
	done chan struct{}
}

func NewMemberRefresher(params ServiceParams) *MemberRefresher {
	return &MemberRefresher{
		ServiceParams: params,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start launches the refresh loop. The interval is re-read from settings on
// every tick, so an administrative change takes effect without a restart.
func (r *MemberRefresher) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop terminates the refresh loop and waits for it to exit
func (r *MemberRefresher) Stop() {
	close(r.stop)
	<-r.done
}

func (r *MemberRefresher) run(ctx context.Context) {
	defer close(r.done)

	interval := r.currentInterval(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.Logger.Infow("member refresher started", "interval", interval)

	for {
		select {
		case <-r.stop:
			r.Logger.Infow("member refresher stopped")
			return
		case <-ctx.Done():
			r.Logger.Infow("member refresher context cancelled")
			return
		case <-ticker.C:
			if err := r.RefreshAll(ctx); err != nil {
				r.Logger.Errorw("member refresh tick failed", "error", err)
			}

			if next := r.currentInterval(ctx); next != interval {
				interval = next
				ticker.Reset(interval)
				r.Logger.Infow("member refresher interval changed", "interval", interval)
			}
		}
	}
}

func (r *MemberRefresher) currentInterval(ctx context.Context) time.Duration {
	settings, err := r.SettingsRepo.Get(ctx)
	if err != nil {
		r.Logger.Errorw("failed to read settings for refresh interval", "error", err)
		return 24 * time.Hour
	}
	return time.Duration(settings.ActiveMemberCheckIntervalHours) * time.Hour
}

// RefreshAll recomputes the active flag for every member once. It is a no-op
// when the active member check is disabled.
func (r *MemberRefresher) RefreshAll(ctx context.Context) error {
	settings, err := r.SettingsRepo.Get(ctx)
	if err != nil {
		return err
	}

	if !settings.ActiveMemberCheckEnabled {
		r.Logger.Debugw("active member check disabled, skipping refresh")
		return nil
	}

	members, err := r.MemberRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	updated := 0
	for _, m := range members {
		active := m.IsActiveFor(settings, now)
		if active == m.Active {
			continue
		}

		if err := r.MemberRepo.SetActive(ctx, m.ID, active); err != nil {
			r.Logger.Errorw("failed to update active flag",
				"member_id", m.ID,
				"error", err,
			)
			continue
		}
		updated++
	}

	r.Logger.Infow("refreshed member active flags",
		"members", len(members),
		"updated", updated,
	)
	return nil
}
