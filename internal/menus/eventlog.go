package menus

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/menu"
	"github.com/leighmacdonald/halgui/internal/selection"
	"github.com/leighmacdonald/halgui/internal/telemetry"
)

// LogEntry is an event as seen by the router.
type LogEntry struct {
	At    time.Time
	Event event.Event
}

func (e LogEntry) String() string {
	return fmt.Sprintf("#%-4d %-8s %v", e.Event.Seq(), e.Event.Type, e.Event.Data)
}

// EventLog keeps the most recent routed events. Record is meant to be registered with
// gui.GUI.Listen(event.Any, log.Record).
type EventLog struct {
	entries []LogEntry
	size    int
	total   int
	now     func() time.Time
}

func NewEventLog(size int, now func() time.Time) *EventLog {
	if now == nil {
		now = time.Now
	}

	return &EventLog{size: max(1, size), now: now}
}

func (l *EventLog) Record(evt event.Event) {
	l.total++
	l.entries = append(l.entries, LogEntry{At: l.now(), Event: evt})
	if len(l.entries) > l.size {
		l.entries = l.entries[len(l.entries)-l.size:]
	}
}

// Entries returns the retained entries, oldest first.
func (l *EventLog) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)

	return out
}

func (l *EventLog) Last() (LogEntry, bool) {
	if len(l.entries) == 0 {
		return LogEntry{}, false
	}

	return l.entries[len(l.entries)-1], true
}

// Total counts every recorded event, including those already dropped.
func (l *EventLog) Total() int {
	return l.total
}

func (l *EventLog) Clear() {
	l.entries = nil
}

// logView refreshes the log lines once per frame when new events were recorded.
type logView struct {
	log   *EventLog
	lines []*menu.Text
	seen  int
	shown int
}

func (v *logView) Tick(ctx menu.Context) bool {
	if v.log.Total() == v.seen && len(v.log.entries) == v.shown {
		return false
	}

	v.seen = v.log.Total()
	entries := v.log.Entries()
	v.shown = len(entries)

	// Newest at the top.
	for i, line := range v.lines {
		if i >= len(entries) {
			line.SetText("")

			continue
		}

		entry := entries[len(entries)-1-i]
		line.SetText(entry.String() + " " + humanize.RelTime(entry.At, ctx.Now, "ago", "from now"))
	}

	return true
}

// EventLogMenu shows the newest routed events. It has no selectable cells; X clears the log.
func EventLogMenu(env Env) *menu.Menu {
	return menu.New("event log", func(m *menu.Menu, _ menu.Payload) {
		if env.Log == nil {
			m.AddItems(menu.NewText("event log disabled"), backButton())
			m.SetSelectionZone(selection.Zero())

			return
		}

		view := &logView{log: env.Log, seen: -1}
		for range telemetry.MaxLinesPerScreen {
			line := menu.NewText("")
			view.lines = append(view.lines, line)
			m.AddItem(line)
		}

		m.AddItems(
			view,
			menu.NewGlobalButton(gamepad.OnClick(gamepad.Pad1(gamepad.X)), func(_ menu.Context, _ event.Event) bool {
				env.Log.Clear()

				return true
			}),
			backButton(),
		)
		m.SetSelectionZone(selection.Zero())
	}, env.Opts...)
}
