package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/ntp"
	"github.com/rs/zerolog"
)

// QueryFunc asks an NTP server for the time
type QueryFunc func(host string, opts ntp.QueryOptions) (*ntp.Response, error)

// Result describes a completed sync
type Result struct {
	Server string
	Time   time.Time
	Offset time.Duration
	RTT    time.Duration
}

// Syncer corrects an RTC from an NTP server. There are no retries: a failed
// sync leaves the RTC untouched.
type Syncer struct {
	Server  string
	Timeout time.Duration
	Query   QueryFunc
	Logger  zerolog.Logger
}

// NewSyncer returns a Syncer using the ntp package's client
func NewSyncer(server string, timeout time.Duration, logger zerolog.Logger) *Syncer {
	return &Syncer{
		Server:  server,
		Timeout: timeout,
		Query:   ntp.QueryWithOptions,
		Logger:  logger,
	}
}

// Sync queries the server once and adjusts rtc to the returned time
func (s *Syncer) Sync(ctx context.Context, rtc RTC) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	type reply struct {
		resp *ntp.Response
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		resp, err := s.Query(s.Server, ntp.QueryOptions{Timeout: s.Timeout})
		done <- reply{resp, err}
	}()

	var r reply
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r = <-done:
	}

	if r.err != nil {
		s.Logger.Warn().Err(r.err).Str("server", s.Server).Msg("ntp query failed")
		return Result{}, fmt.Errorf("query %s: %w", s.Server, r.err)
	}
	if err := r.resp.Validate(); err != nil {
		s.Logger.Warn().Err(err).Str("server", s.Server).Msg("ntp response rejected")
		return Result{}, fmt.Errorf("validate %s: %w", s.Server, err)
	}

	now := r.resp.Time.Add(r.resp.RTT / 2)
	rtc.Adjust(now)

	res := Result{
		Server: s.Server,
		Time:   now,
		Offset: r.resp.ClockOffset,
		RTT:    r.resp.RTT,
	}
	s.Logger.Info().
		Str("server", s.Server).
		Dur("offset", res.Offset).
		Dur("rtt", res.RTT).
		Msg("time synced")
	return res, nil
}
