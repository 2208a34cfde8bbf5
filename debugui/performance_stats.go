package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/buildgrid/tick"
)

// PerformanceStats keeps a ring of frame times and shows them with the
// scheduler's per-system timings.
type PerformanceStats struct {
	scheduler *tick.Scheduler

	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

// NewPerformanceStats creates a window remembering historyFrames frame times.
func NewPerformanceStats(historyFrames int) *PerformanceStats {
	historyFrames = max(historyFrames, 1)
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Watch switches to the statistics of scheduler.
func (ps *PerformanceStats) Watch(scheduler *tick.Scheduler) {
	ps.scheduler = scheduler
}

// Execute implements tick.System by recording the frame time.
func (ps *PerformanceStats) Execute(frame *tick.Frame) {
	ps.Record(frame.DeltaTime)
}

// Record adds a frame time in seconds.
func (ps *PerformanceStats) Record(dt float64) {
	ps.frameHistory[ps.frameIndex] = float32(dt * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.recorded = min(ps.recorded+1, ps.historyFrames)
}

// Average returns the mean of the recorded frame times in milliseconds.
func (ps *PerformanceStats) Average() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.recorded)
}

// Render draws the window.
func (ps *PerformanceStats) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 420), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 260), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if ps.scheduler == nil {
		imgui.End()
		return
	}

	stats := ps.scheduler.Stats()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
