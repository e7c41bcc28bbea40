package menus

import (
	"fmt"
	"time"

	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/menu"
)

const (
	blinkStep     = 100 * time.Millisecond
	blinkMinSpeed = 100 * time.Millisecond
	blinkMaxSpeed = 2 * time.Second
)

func Settings(env Env) *menu.Menu {
	return menu.New("settings", func(m *menu.Menu, _ menu.Payload) {
		status := menu.NewText("")
		showSpeed := func(speed time.Duration) {
			status.SetText(fmt.Sprintf("Blink: %s", speed))
		}
		showSpeed(m.BlinkSpeed())

		adjust := func(delta time.Duration) menu.Action {
			return func(ctx menu.Context, _ event.Event) bool {
				speed := clamp(ctx.Menu.BlinkSpeed()+delta, blinkMinSpeed, blinkMaxSpeed)
				if speed == ctx.Menu.BlinkSpeed() {
					return false
				}

				if env.Blink != nil {
					env.Blink.SetBlinkSpeed(speed)
				} else {
					ctx.Menu.SetBlinkSpeed(speed)
				}

				showSpeed(speed)
				if env.OnBlinkSpeed != nil {
					env.OnBlinkSpeed(speed)
				}

				return true
			}
		}

		m.AddItems(
			status,
			menu.NewButton("Blink faster", confirm(gamepad.Gamepad1), adjust(-blinkStep)),
			menu.NewButton("Blink slower", confirm(gamepad.Gamepad1), adjust(blinkStep)),
			backButton(),
		)
	}, env.Opts...)
}
