package menu

import "time"

type BlinkState int

const (
	BlinkOn BlinkState = iota
	BlinkOff
)

func (s BlinkState) String() string {
	if s == BlinkOn {
		return "on"
	}

	return "off"
}

type blinker struct {
	state   BlinkState
	last    time.Time
	speed   time.Duration
	enabled bool
}

// advance moves the two state cycle forward. Disabled blinking keeps the cursor off, a forced
// update lights it and restarts the timer.
func (b *blinker) advance(now time.Time, force bool) {
	switch {
	case !b.enabled:
		b.state = BlinkOff
	case force:
		b.state = BlinkOn
		b.last = now
	case now.Sub(b.last) >= b.speed:
		if b.state == BlinkOn {
			b.state = BlinkOff
		} else {
			b.state = BlinkOn
		}
		b.last = now
	}
}
