package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame.
const (
	PhaseIntegrate = "integrate"
	PhaseCollide   = "collide"
	PhaseDraw      = "draw"
	PhasePresent   = "present"
)

var phaseOrder = []string{PhaseIntegrate, PhaseCollide, PhaseDraw, PhasePresent}

// FrameSample holds timing data for a single frame.
type FrameSample struct {
	Duration time.Duration
	Phases   map[string]time.Duration
}

// FrameCollector tracks frame timing over a rolling window.
type FrameCollector struct {
	now func() time.Time

	windowSize  int
	samples     []FrameSample
	writeIndex  int
	sampleCount int
	frames      uint64

	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewFrameCollector creates a collector keeping the last windowSize frames
// (e.g., 60 for 1 second at 60fps).
func NewFrameCollector(windowSize int) *FrameCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &FrameCollector{
		now:           time.Now,
		windowSize:    windowSize,
		samples:       make([]FrameSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *FrameCollector) StartFrame() {
	p.frameStart = p.now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *FrameCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *FrameCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.add(FrameSample{Duration: now.Sub(p.frameStart), Phases: p.currentPhases})
}

// Record adds a frame measured elsewhere, such as a timer delta.
func (p *FrameCollector) Record(d time.Duration) {
	p.add(FrameSample{Duration: d})
}

func (p *FrameCollector) add(s FrameSample) {
	p.samples[p.writeIndex] = s
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.frames++
}

// FrameStats holds aggregated frame statistics over the window.
type FrameStats struct {
	Frames  uint64 // Frames recorded since start
	Samples int    // Frames in the window

	MeanMS   float64
	StdDevMS float64
	MinMS    float64
	MaxMS    float64
	P95MS    float64
	FPS      float64 // From the mean frame time

	// Phase percentages of total frame time
	PhasePct map[string]float64
}

// Stats computes aggregated statistics over the current window.
func (p *FrameCollector) Stats() FrameStats {
	s := FrameStats{
		Frames:   p.frames,
		Samples:  p.sampleCount,
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return s
	}

	ms := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	var total time.Duration
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		ms[i] = float64(sample.Duration) / float64(time.Millisecond)
		total += sample.Duration
		for phase, d := range sample.Phases {
			phaseSum[phase] += d
		}
	}

	if len(ms) > 1 {
		s.MeanMS, s.StdDevMS = stat.MeanStdDev(ms, nil)
	} else {
		s.MeanMS = ms[0]
	}
	s.MinMS = floats.Min(ms)
	s.MaxMS = floats.Max(ms)

	slices.Sort(ms)
	s.P95MS = stat.Quantile(0.95, stat.Empirical, ms, nil)

	if s.MeanMS > 0 {
		s.FPS = 1000 / s.MeanMS
	}
	if total > 0 {
		for phase, sum := range phaseSum {
			s.PhasePct[phase] = float64(sum) / float64(total) * 100
		}
	}
	return s
}

// LogStats logs frame statistics.
func (s FrameStats) LogStats(bodies int) {
	attrs := []any{
		"frames", s.Frames,
		"bodies", bodies,
		"fps", int(s.FPS),
		"frame_ms", s.MeanMS,
		"frame_std_ms", s.StdDevMS,
		"frame_p95_ms", s.P95MS,
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Uint64("frames", s.Frames),
		slog.Float64("mean_ms", s.MeanMS),
		slog.Float64("stddev_ms", s.StdDevMS),
		slog.Float64("p95_ms", s.P95MS),
		slog.Float64("fps", s.FPS),
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// FrameStatsCSV is a flat struct for CSV export of frame stats.
type FrameStatsCSV struct {
	Tick         int64   `csv:"tick"`
	Frames       uint64  `csv:"frames"`
	MeanMS       float64 `csv:"mean_ms"`
	StdDevMS     float64 `csv:"stddev_ms"`
	MinMS        float64 `csv:"min_ms"`
	MaxMS        float64 `csv:"max_ms"`
	P95MS        float64 `csv:"p95_ms"`
	FPS          float64 `csv:"fps"`
	IntegratePct float64 `csv:"integrate_pct"`
	CollidePct   float64 `csv:"collide_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	PresentPct   float64 `csv:"present_pct"`
}

// ToCSV flattens the stats for the row written at tick.
func (s FrameStats) ToCSV(tick int64) FrameStatsCSV {
	return FrameStatsCSV{
		Tick:         tick,
		Frames:       s.Frames,
		MeanMS:       s.MeanMS,
		StdDevMS:     s.StdDevMS,
		MinMS:        s.MinMS,
		MaxMS:        s.MaxMS,
		P95MS:        s.P95MS,
		FPS:          s.FPS,
		IntegratePct: s.PhasePct[PhaseIntegrate],
		CollidePct:   s.PhasePct[PhaseCollide],
		DrawPct:      s.PhasePct[PhaseDraw],
		PresentPct:   s.PhasePct[PhasePresent],
	}
}
