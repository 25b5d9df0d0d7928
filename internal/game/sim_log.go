package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Entity   string  // label e.g. "ET3", "PT0", or "--" for map events
	Faction  string  // "p0".."p3", "enemy", or "--"
	Category string  // spawn, death, fire, ai, bullet, player, gc, map
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] ET3  ai        state_change     wander → chase
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// SimLog collects structured simulation events. It is unbounded and
// machine-readable; the viewer's EventFeed is the on-screen ring buffer.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position and
// orientation entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, entity, faction, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Entity:   entity,
		Faction:  faction,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, entity, faction, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, entity, faction, category, key, value, numVal)
}

// Verbose reports whether per-tick entries are being recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterEntity returns entries for a specific entity label.
func (sl *SimLog) FilterEntity(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Entity == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// FirstOf returns the earliest entry matching category+key, or false if none.
func (sl *SimLog) FirstOf(category, key string) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if e.Category == category && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable account of a map's population and
// what has happened on it so far.
func (sl *SimLog) Summary(tick int, reg *EntityRegistry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)

	fmt.Fprintf(&sb, "Alive: ")
	for _, kind := range []EntityType{EntityPlayerTank, EntityEnemyTank, EntityEnemyTurret, EntityBoulder, EntityBullet} {
		alive := 0
		for _, e := range reg.OfType(kind) {
			if e != nil && e.IsAlive() {
				alive++
			}
		}
		fmt.Fprintf(&sb, "%s=%d  ", kind, alive)
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "Shots: %d  Deaths: %d  Bounces: %d\n",
		sl.CountCategory("fire", ""), sl.CountCategory("death", ""), sl.CountCategory("bullet", "bounce"))

	chasing := 0
	for _, kind := range []EntityType{EntityEnemyTank, EntityEnemyTurret} {
		for _, e := range reg.OfType(kind) {
			if ai, ok := e.(interface{ State() AIState }); ok && e.IsAlive() && ai.State() == AIChase {
				chasing++
			}
		}
	}
	fmt.Fprintf(&sb, "AI chasing: %d\n", chasing)
	return sb.String()
}
