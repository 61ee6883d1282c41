package main

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Event is the union of the payloads the backend publishes.
type Event struct {
	Event      string    `json:"event"`
	GameID     string    `json:"gameId"`
	Username   string    `json:"username"`
	Size       int       `json:"size"`
	Difficulty string    `json:"difficulty"`
	Strategy   string    `json:"strategy"`
	By         string    `json:"by"`
	Reason     string    `json:"reason"` // win|loss|draw, human's view
	Moves      int       `json:"moves"`
	Duration   string    `json:"duration"`
	TS         time.Time `json:"ts"`
}

type bucketKey struct {
	Difficulty string
	Size       int
}

type Bucket struct {
	Difficulty string
	Size       int
	Started    int
	Finished   int
	HumanWins  int
	EngineWins int
	Draws      int
	Moves      int
	Duration   time.Duration
}

func (b Bucket) AvgMoves() float64 {
	if b.Finished == 0 {
		return 0
	}
	return float64(b.Moves) / float64(b.Finished)
}

func (b Bucket) AvgDuration() time.Duration {
	if b.Finished == 0 {
		return 0
	}
	return b.Duration / time.Duration(b.Finished)
}

type Aggregates struct {
	mu          sync.Mutex
	buckets     map[bucketKey]*Bucket
	open        map[string]time.Time
	playerMoves map[string]int
	engineMoves int
	perHour     map[time.Time]int
	lastPrint   time.Time
}

func NewAggregates() *Aggregates {
	return &Aggregates{
		buckets:     make(map[bucketKey]*Bucket),
		open:        make(map[string]time.Time),
		playerMoves: make(map[string]int),
		perHour:     make(map[time.Time]int),
	}
}

func (a *Aggregates) bucket(ev Event) *Bucket {
	k := bucketKey{ev.Difficulty, ev.Size}
	b := a.buckets[k]
	if b == nil {
		b = &Bucket{Difficulty: ev.Difficulty, Size: ev.Size}
		a.buckets[k] = b
	}
	return b
}

// Add folds one event into the totals. now stands in for events without a timestamp.
// It reports whether the event kind was recognised.
func (a *Aggregates) Add(ev Event, now time.Time) bool {
	ts := ev.TS
	if ts.IsZero() {
		ts = now
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	switch ev.Event {
	case "match.start":
		a.bucket(ev).Started++
		a.open[ev.GameID] = ts
		a.perHour[ts.Truncate(time.Hour)]++
	case "move":
		if ev.By == "BOT" {
			a.engineMoves++
		} else {
			a.playerMoves[ev.By]++
		}
	case "game.end":
		b := a.bucket(ev)
		b.Finished++
		b.Moves += ev.Moves
		switch ev.Reason {
		case "win":
			b.HumanWins++
		case "loss":
			b.EngineWins++
		default:
			b.Draws++
		}
		if d, err := time.ParseDuration(ev.Duration); err == nil {
			b.Duration += d
		} else if start, ok := a.open[ev.GameID]; ok {
			b.Duration += ts.Sub(start)
		}
		delete(a.open, ev.GameID)
	default:
		return false
	}
	return true
}

// Snapshot returns the buckets ordered by difficulty, then board size.
func (a *Aggregates) Snapshot() []Bucket {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Bucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Difficulty != out[j].Difficulty {
			return out[i].Difficulty < out[j].Difficulty
		}
		return out[i].Size < out[j].Size
	})
	return out
}

func (a *Aggregates) OpenGames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.open)
}

func (a *Aggregates) PlayerMoves(username string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playerMoves[username]
}

// Print writes a report at most once per interval and reports whether it did.
func (a *Aggregates) Print(w io.Writer, now time.Time, interval time.Duration) bool {
	a.mu.Lock()
	if now.Sub(a.lastPrint) < interval {
		a.mu.Unlock()
		return false
	}
	a.lastPrint = now
	hours := make([]time.Time, 0, len(a.perHour))
	for h := range a.perHour {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })
	perHour := make([]int, len(hours))
	for i, h := range hours {
		perHour[i] = a.perHour[h]
	}
	open, engineMoves := len(a.open), a.engineMoves
	a.mu.Unlock()

	fmt.Fprintln(w, "---- Analytics Snapshot ----")
	fmt.Fprintf(w, "Open games  : %d\n", open)
	fmt.Fprintf(w, "Engine moves: %d\n", engineMoves)
	fmt.Fprintln(w, "By difficulty and size:")
	for _, b := range a.Snapshot() {
		fmt.Fprintf(w, "  %-6s %dx%d: %d started, %d finished, human %d / engine %d / draw %d, avg %.1f moves, avg %v\n",
			b.Difficulty, b.Size, b.Size, b.Started, b.Finished, b.HumanWins, b.EngineWins, b.Draws, b.AvgMoves(), b.AvgDuration())
	}
	fmt.Fprintln(w, "Games per hour:")
	for i, h := range hours {
		fmt.Fprintf(w, "  %s : %d\n", h.Format("2006-01-02 15:00"), perHour[i])
	}
	fmt.Fprintln(w, "----------------------------")
	return true
}
