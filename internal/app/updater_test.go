package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"weatherstatus/internal/announce"
	"weatherstatus/internal/weather"
)

type fakeFetcher struct {
	obs   weather.Observation
	err   error
	calls int
}

func (f *fakeFetcher) Current(ctx context.Context) (weather.Observation, error) {
	f.calls++
	if f.err != nil {
		return weather.Observation{}, f.err
	}
	return f.obs, nil
}

type fakeSetter struct {
	err    error
	pushed []int64
}

func (s *fakeSetter) SetEmojiStatus(ctx context.Context, documentID int64) error {
	if s.err != nil {
		return s.err
	}
	s.pushed = append(s.pushed, documentID)
	return nil
}

type fakeAnnouncer struct {
	err   error
	calls int
	last  announce.Announcement
}

func (a *fakeAnnouncer) Publish(an announce.Announcement) error {
	a.calls++
	a.last = an
	return a.err
}

func clearDayObservation() weather.Observation {
	return weather.Observation{
		City:       "Saint Petersburg",
		Condition:  weather.Clear,
		Code:       800,
		TempC:      21.5,
		IsDaytime:  true,
		ObservedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestUpdateOnce_ClearDayPushesSunEmoji(t *testing.T) {
	fetcher := &fakeFetcher{obs: clearDayObservation()}
	setter := &fakeSetter{}

	u := NewUpdater(fetcher, setter, nil, time.Minute, time.Second)
	if err := u.UpdateOnce(context.Background()); err != nil {
		t.Fatalf("UpdateOnce() error = %v, want nil", err)
	}

	const sunClearID = int64(5469947168523558652)
	if len(setter.pushed) != 1 {
		t.Fatalf("pushed %d statuses, want 1", len(setter.pushed))
	}
	if setter.pushed[0] != sunClearID {
		t.Errorf("pushed document id = %d, want %d", setter.pushed[0], sunClearID)
	}
}

func TestUpdateOnce_RainAtNightPushesRainEmoji(t *testing.T) {
	fetcher := &fakeFetcher{obs: weather.Observation{
		City:      "Saint Petersburg",
		Condition: weather.Rain,
		Code:      501,
		IsDaytime: false,
	}}
	setter := &fakeSetter{}

	u := NewUpdater(fetcher, setter, nil, time.Minute, time.Second)
	if err := u.UpdateOnce(context.Background()); err != nil {
		t.Fatalf("UpdateOnce() error = %v, want nil", err)
	}

	const rainID = int64(5283243028905994049)
	if len(setter.pushed) != 1 || setter.pushed[0] != rainID {
		t.Fatalf("pushed = %v, want exactly [%d]", setter.pushed, rainID)
	}
}

func TestUpdateOnce_FetchFailureSkipsPushAndAnnounce(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	setter := &fakeSetter{}
	announcer := &fakeAnnouncer{}

	u := NewUpdater(fetcher, setter, announcer, time.Minute, time.Second)
	if err := u.UpdateOnce(context.Background()); err == nil {
		t.Fatalf("UpdateOnce() error = nil, want fetch error")
	}

	if len(setter.pushed) != 0 {
		t.Errorf("status was pushed despite fetch failure: %v", setter.pushed)
	}
	if announcer.calls != 0 {
		t.Errorf("announcer called %d times despite fetch failure, want 0", announcer.calls)
	}
}

func TestUpdateOnce_PushFailureRecoversNextIteration(t *testing.T) {
	fetcher := &fakeFetcher{obs: clearDayObservation()}
	setter := &fakeSetter{err: errors.New("FLOOD_WAIT")}

	u := NewUpdater(fetcher, setter, nil, time.Minute, time.Second)
	if err := u.UpdateOnce(context.Background()); err == nil {
		t.Fatalf("UpdateOnce() error = nil, want push error")
	}

	// Next iteration performs a fresh fetch and push.
	setter.err = nil
	if err := u.UpdateOnce(context.Background()); err != nil {
		t.Fatalf("UpdateOnce() second iteration error = %v, want nil", err)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher called %d times, want 2", fetcher.calls)
	}
	if len(setter.pushed) != 1 {
		t.Errorf("pushed %d statuses after recovery, want 1", len(setter.pushed))
	}
}

func TestUpdateOnce_AnnouncesPushedStatus(t *testing.T) {
	fetcher := &fakeFetcher{obs: clearDayObservation()}
	setter := &fakeSetter{}
	announcer := &fakeAnnouncer{}

	u := NewUpdater(fetcher, setter, announcer, time.Minute, time.Second)
	if err := u.UpdateOnce(context.Background()); err != nil {
		t.Fatalf("UpdateOnce() error = %v, want nil", err)
	}

	if announcer.calls != 1 {
		t.Fatalf("announcer called %d times, want 1", announcer.calls)
	}
	a := announcer.last
	if a.City != "Saint Petersburg" {
		t.Errorf("announcement city = %q, want %q", a.City, "Saint Petersburg")
	}
	if a.Condition != "clear" {
		t.Errorf("announcement condition = %q, want %q", a.Condition, "clear")
	}
	if a.Emoji != "sun_clear" {
		t.Errorf("announcement emoji = %q, want %q", a.Emoji, "sun_clear")
	}
	if !a.IsDaytime {
		t.Errorf("announcement is_daytime = false, want true")
	}
}

func TestUpdateOnce_AnnounceFailureDoesNotFailIteration(t *testing.T) {
	fetcher := &fakeFetcher{obs: clearDayObservation()}
	setter := &fakeSetter{}
	announcer := &fakeAnnouncer{err: errors.New("mqtt client not connected")}

	u := NewUpdater(fetcher, setter, announcer, time.Minute, time.Second)
	if err := u.UpdateOnce(context.Background()); err != nil {
		t.Fatalf("UpdateOnce() error = %v, want nil when only the announcer fails", err)
	}
	if len(setter.pushed) != 1 {
		t.Errorf("pushed %d statuses, want 1", len(setter.pushed))
	}
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	fetcher := &fakeFetcher{obs: clearDayObservation()}
	setter := &fakeSetter{}

	u := NewUpdater(fetcher, setter, nil, 10*time.Millisecond, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := u.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want context.DeadlineExceeded", err)
	}

	// Immediate first update plus at least one tick.
	if fetcher.calls < 2 {
		t.Errorf("fetcher called %d times, want at least 2", fetcher.calls)
	}
	if len(setter.pushed) != fetcher.calls {
		t.Errorf("pushed %d statuses for %d fetches", len(setter.pushed), fetcher.calls)
	}
}

func TestRun_KeepsSchedulingThroughFailures(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("HTTP 500")}
	setter := &fakeSetter{}

	u := NewUpdater(fetcher, setter, nil, 10*time.Millisecond, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := u.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() error = %v, want context.DeadlineExceeded", err)
	}

	if fetcher.calls < 2 {
		t.Errorf("fetcher called %d times, want the loop to keep ticking through failures", fetcher.calls)
	}
	if len(setter.pushed) != 0 {
		t.Errorf("pushed %d statuses, want 0 when every fetch fails", len(setter.pushed))
	}
}
