package tick

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount int
	Frames      uint64
	Systems     []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStats struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler executes systems in registration order.
type Scheduler struct {
	systems  []System
	stats    []*systemStats
	commands *Commands
	frames   uint64
}

// NewScheduler creates a scheduler with no systems.
func NewScheduler() *Scheduler {
	return &Scheduler{commands: NewCommands()}
}

// Register appends system to the frame. name labels its statistics; when empty
// the system's type name is used.
func (s *Scheduler) Register(system System, name string) {
	if name == "" {
		t := reflect.TypeOf(system)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		name = t.Name()
	}

	s.systems = append(s.systems, system)
	s.stats = append(s.stats, &systemStats{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Commands returns the buffer flushed at the end of every frame, for work
// queued from outside a system.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

// Once executes all registered systems once with the given delta time and then
// flushes deferred commands.
func (s *Scheduler) Once(dt float64) {
	s.frames++
	frame := &Frame{
		Number:    s.frames,
		DeltaTime: dt,
		Commands:  s.commands,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.stats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}

	s.commands.Flush()
}

// Run executes frames at the given interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	out := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.stats)),
	}

	for i, st := range s.stats {
		var avg time.Duration
		minDuration := st.minDuration
		if st.executionCount > 0 {
			avg = st.totalDuration / time.Duration(st.executionCount)
		} else {
			minDuration = 0
		}

		out.Systems[i] = SystemStats{
			Name:           st.name,
			ExecutionCount: st.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    st.maxDuration,
			AvgDuration:    avg,
			LastDuration:   st.lastDuration,
			TotalDuration:  st.totalDuration,
		}
	}
	return out
}
