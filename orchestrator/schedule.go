package orchestrator

import "github.com/gechr/clog"

// Schedule selects the order in which graphs and animations run within a
// tick.
type Schedule int

const (
	// SinglePass runs every animation, then every graph, once each.
	SinglePass Schedule = iota
	// TwoPass runs every graph, then every animation, then every graph
	// again, so the second graph pass can consume animation-produced
	// writes in the same tick.
	TwoPass
	// RateDecoupled is reserved for a future scheduling mode that steps
	// controllers at independent rates; it currently falls back to
	// SinglePass.
	RateDecoupled
)

func runSinglePass(o *Orchestrator, dt float32) (OrchestratorFrame, error) {
	frame := newFrame(o.epoch, dt)

	if len(o.anims) > 0 {
		if err := runAnimationsPass(o, dt, &frame); err != nil {
			return OrchestratorFrame{}, err
		}
		frame.TimingsMs["animations_ms"] = dt * 1000
	}
	if len(o.graphs) > 0 {
		if err := runGraphsPass(o, dt, &frame); err != nil {
			return OrchestratorFrame{}, err
		}
		frame.TimingsMs["graphs_ms"] = dt * 1000
	}
	frame.TimingsMs["total_ms"] = dt * 1000
	clog.Trace().Uint64("epoch", frame.Epoch).Int("writes", frame.MergedWrites.Len()).Msg("single-pass tick complete")
	return frame, nil
}

func runTwoPass(o *Orchestrator, dt float32) (OrchestratorFrame, error) {
	frame := newFrame(o.epoch, dt)

	if len(o.graphs) > 0 {
		if err := runGraphsPass(o, dt, &frame); err != nil {
			return OrchestratorFrame{}, err
		}
		frame.TimingsMs["graphs_pass1_ms"] = dt * 1000
	}
	if len(o.anims) > 0 {
		if err := runAnimationsPass(o, dt, &frame); err != nil {
			return OrchestratorFrame{}, err
		}
		frame.TimingsMs["animations_ms"] = dt * 1000
	}
	if len(o.graphs) > 0 {
		if err := runGraphsPass(o, dt, &frame); err != nil {
			return OrchestratorFrame{}, err
		}
		frame.TimingsMs["graphs_pass2_ms"] = dt * 1000
	}
	frame.TimingsMs["total_ms"] = dt * 1000
	clog.Trace().Uint64("epoch", frame.Epoch).Int("writes", frame.MergedWrites.Len()).Msg("two-pass tick complete")
	return frame, nil
}

func runAnimationsPass(o *Orchestrator, dt float32, frame *OrchestratorFrame) error {
	for _, id := range o.animOrder {
		anim := o.anims[id]
		batch, events, err := anim.Update(dt, o.blackboard)
		if err != nil {
			return err
		}
		frame.MergedWrites.AppendBatch(batch)
		frame.Conflicts = append(frame.Conflicts, o.blackboard.ApplyWriteBatch(batch, o.epoch, "anim:"+id)...)
		frame.Events = append(frame.Events, events...)
	}
	return nil
}

func runGraphsPass(o *Orchestrator, dt float32, frame *OrchestratorFrame) error {
	for _, id := range o.graphOrder {
		g := o.graphs[id]
		batch, err := g.Evaluate(o.blackboard, o.epoch, dt)
		if err != nil {
			return err
		}
		frame.MergedWrites.AppendBatch(batch)
		frame.Conflicts = append(frame.Conflicts, o.blackboard.ApplyWriteBatch(batch, o.epoch, "graph:"+id)...)
	}
	return nil
}
