package app

import (
	"context"
	"log/slog"
	"time"

	"weatherstatus/internal/announce"
	"weatherstatus/internal/config"
	"weatherstatus/internal/telegram"
	"weatherstatus/internal/weather"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("initializing",
		"city", cfg.CityName,
		"country", cfg.CountryCode,
		"update_interval", cfg.UpdateInterval,
		"weather_timeout", cfg.WeatherTimeout,
		"announcer", cfg.AnnouncerEnabled(),
	)

	weatherClient := weather.New(cfg)

	var announcer Announcer
	if cfg.AnnouncerEnabled() {
		publisher := announce.NewPublisher(cfg)
		defer publisher.Disconnect()

		// Short timeout on the initial connect so a down broker does not
		// block startup; the client keeps retrying in the background.
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := publisher.Connect(connectCtx)
		cancel()
		if err != nil {
			slog.Warn("mqtt connect failed (continuing without announcements)", "error", err)
		}
		announcer = publisher
	}

	tgClient := telegram.New(cfg)

	return tgClient.Run(ctx, func(ctx context.Context) error {
		updater := NewUpdater(weatherClient, tgClient, announcer, cfg.UpdateInterval, cfg.WeatherTimeout)
		return updater.Run(ctx)
	})
}
