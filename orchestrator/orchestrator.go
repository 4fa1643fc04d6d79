package orchestrator

import (
	"github.com/brindlerun/animaflow/animengine"
	"github.com/brindlerun/animaflow/value"
	"github.com/brindlerun/animaflow/writebatch"
)

// OrchestratorFrame is the result of one Orchestrator.Step call.
type OrchestratorFrame struct {
	Epoch        uint64
	Dt           float32
	MergedWrites writebatch.WriteBatch
	Conflicts    []ConflictLog
	TimingsMs    map[string]float32
	Events       []animengine.Event
}

func newFrame(epoch uint64, dt float32) OrchestratorFrame {
	return OrchestratorFrame{Epoch: epoch, Dt: dt, TimingsMs: make(map[string]float32)}
}

// Orchestrator owns the shared Blackboard and every graph/animation
// controller wired into it, and steps them each tick under a chosen
// Schedule. Controllers run in the order they were registered in, not
// map iteration order, so two orchestrators built by the same call
// sequence always merge writes identically.
type Orchestrator struct {
	blackboard *Blackboard
	epoch      uint64
	schedule   Schedule
	graphs     map[string]*GraphController
	graphOrder []string
	anims      map[string]*AnimationController
	animOrder  []string
}

// New constructs an Orchestrator with an empty blackboard, stepped under
// schedule.
func New(schedule Schedule) *Orchestrator {
	return &Orchestrator{
		blackboard: NewBlackboard(),
		schedule:   schedule,
		graphs:     make(map[string]*GraphController),
		anims:      make(map[string]*AnimationController),
	}
}

// WithGraph registers a graph controller and returns the Orchestrator for
// chaining. Re-registering an id keeps its original position in
// graphOrder; only the controller itself is replaced.
func (o *Orchestrator) WithGraph(cfg GraphControllerConfig) *Orchestrator {
	if _, exists := o.graphs[cfg.ID]; !exists {
		o.graphOrder = append(o.graphOrder, cfg.ID)
	}
	o.graphs[cfg.ID] = NewGraphController(cfg)
	return o
}

// WithAnimation registers an animation controller and returns the
// Orchestrator for chaining. Re-registering an id keeps its original
// position in animOrder; only the controller itself is replaced.
func (o *Orchestrator) WithAnimation(cfg AnimationControllerConfig) *Orchestrator {
	if _, exists := o.anims[cfg.ID]; !exists {
		o.animOrder = append(o.animOrder, cfg.ID)
	}
	o.anims[cfg.ID] = NewAnimationController(cfg)
	return o
}

// SetInput stages a host-provided write directly onto the blackboard,
// attributed to source "host" at the orchestrator's current epoch.
func (o *Orchestrator) SetInput(path string, v value.Value, shape *value.Shape) {
	o.blackboard.Set(path, v, shape, o.epoch, "host")
}

// Blackboard exposes the shared blackboard for direct inspection (tests,
// diagnostics).
func (o *Orchestrator) Blackboard() *Blackboard {
	return o.blackboard
}

// Step advances the epoch, then runs one tick of the configured Schedule
// across every registered controller.
func (o *Orchestrator) Step(dt float32) (OrchestratorFrame, error) {
	o.epoch++
	switch o.schedule {
	case TwoPass:
		return runTwoPass(o, dt)
	default: // SinglePass, RateDecoupled (reserved, falls back)
		return runSinglePass(o, dt)
	}
}
