package ecs

// System updates a world once per cycle.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) {
	f(w)
}

// Stage names a phase of a scheduling cycle.
type Stage int

const (
	// StageStartup runs once, at the start of the first cycle.
	StageStartup Stage = iota
	StagePreUpdate
	StageUpdate
	StagePostUpdate
)

var cycleStages = []Stage{StagePreUpdate, StageUpdate, StagePostUpdate}

func (s Stage) String() string {
	switch s {
	case StageStartup:
		return "startup"
	case StagePreUpdate:
		return "pre_update"
	case StageUpdate:
		return "update"
	case StagePostUpdate:
		return "post_update"
	default:
		return "unknown"
	}
}

// Scheduler runs systems stage by stage, in the order they were added.
type Scheduler struct {
	stages  map[Stage][]System
	started bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{stages: make(map[Stage][]System)}
}

func (s *Scheduler) Add(stage Stage, systems ...System) {
	for _, system := range systems {
		if system == nil {
			continue
		}
		s.stages[stage] = append(s.stages[stage], system)
	}
}

// Update runs one cycle. Startup systems run before the first PreUpdate.
func (s *Scheduler) Update(w *World) {
	if !s.started {
		s.started = true
		s.run(StageStartup, w)
	}
	for _, stage := range cycleStages {
		s.run(stage, w)
	}
}

func (s *Scheduler) Systems(stage Stage) []System {
	systems := make([]System, 0, len(s.stages[stage]))
	return append(systems, s.stages[stage]...)
}

func (s *Scheduler) run(stage Stage, w *World) {
	for _, system := range s.stages[stage] {
		system.Update(w)
	}
}
