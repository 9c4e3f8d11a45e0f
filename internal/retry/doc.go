// Package retry is intentionally narrow: two named schedules, not a
// general-purpose backoff config callers can tune arbitrarily.
//
// # Policies
//
//   - BindSocket(): 3 attempts, 100ms-5s delay, for UDP.Open
//   - SerialOpen(): 5 attempts, 250ms-3s delay, for Serial.Open
//
// # Usage
//
//	bind := func() error { return u.bindSocket() }
//	if err := retry.Do(ctx, retry.BindSocket(), bind); err != nil {
//	    return errors.WrapTransient(err, "transport.udp", "Open", "bind socket")
//	}
//
// A step that opened successfully but failed a follow-up check it can
// never pass (e.g. a termios ioctl on a file that isn't a tty) should
// return retry.NonRetryable(err) so Do stops after the first attempt
// instead of burning through the whole schedule.
//
// # Context cancellation
//
// Do checks the context after each failed attempt and during backoff,
// returning as soon as it is cancelled rather than waiting out the
// remaining schedule. An attempt that is already running is not
// interrupted.
package retry
