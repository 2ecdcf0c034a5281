package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"weatherstatus/internal/announce"
	"weatherstatus/internal/status"
	"weatherstatus/internal/weather"
)

// Fetcher yields one fresh observation per call.
type Fetcher interface {
	Current(ctx context.Context) (weather.Observation, error)
}

// StatusSetter pushes an emoji status to the account.
type StatusSetter interface {
	SetEmojiStatus(ctx context.Context, documentID int64) error
}

// Announcer mirrors the pushed status to an external sink.
type Announcer interface {
	Publish(a announce.Announcement) error
}

// Updater runs the fetch, map, push cycle. Each iteration is independent: a
// failure is logged and the next tick proceeds on schedule, no backoff.
type Updater struct {
	fetcher   Fetcher
	setter    StatusSetter
	announcer Announcer // nil when the MQTT announcer is disabled

	interval    time.Duration
	callTimeout time.Duration

	failures int
}

func NewUpdater(fetcher Fetcher, setter StatusSetter, announcer Announcer, interval, callTimeout time.Duration) *Updater {
	return &Updater{
		fetcher:     fetcher,
		setter:      setter,
		announcer:   announcer,
		interval:    interval,
		callTimeout: callTimeout,
	}
}

// Run performs an immediate first update, then one per tick until ctx is
// done. Only cancellation ends the loop.
func (u *Updater) Run(ctx context.Context) error {
	u.tick(ctx)

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			u.tick(ctx)
		}
	}
}

func (u *Updater) tick(ctx context.Context) {
	if err := u.UpdateOnce(ctx); err != nil {
		u.failures++
		slog.Error("update failed", "error", err, "consecutive_failures", u.failures)
		return
	}
	u.failures = 0
}

// UpdateOnce runs a single fetch, map, push iteration. A fetch failure
// returns before the status client is touched; the announcer only sees
// successful pushes and its own failures never fail the iteration.
func (u *Updater) UpdateOnce(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	obs, err := u.fetcher.Current(fetchCtx)
	cancel()
	if err != nil {
		return err
	}

	emoji := status.Select(obs.Condition, obs.IsDaytime)
	slog.Info("weather observed",
		"city", obs.City,
		"condition", obs.Condition,
		"code", obs.Code,
		"temp_c", obs.TempC,
		"daytime", obs.IsDaytime,
		"emoji", emoji.Key,
	)

	pushCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	err = u.setter.SetEmojiStatus(pushCtx, emoji.DocumentID)
	cancel()
	if err != nil {
		return fmt.Errorf("push status: %w", err)
	}
	slog.Info("emoji status updated", "emoji", emoji.Key, "document_id", emoji.DocumentID)

	if u.announcer != nil {
		a := announce.Announcement{
			City:         obs.City,
			Condition:    string(obs.Condition),
			Emoji:        emoji.Key,
			EmojiID:      emoji.DocumentID,
			IsDaytime:    obs.IsDaytime,
			TemperatureC: obs.TempC,
			ObservedAt:   obs.ObservedAt,
		}
		if err := u.announcer.Publish(a); err != nil {
			slog.Warn("announce failed", "error", err)
		}
	}

	return nil
}
