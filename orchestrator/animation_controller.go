package orchestrator

import (
	"strconv"

	"github.com/brindlerun/animaflow/animengine"
	"github.com/brindlerun/animaflow/common"
	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/writebatch"
)

// AnimationControllerConfig configures one named animation engine wired
// into an Orchestrator.
type AnimationControllerConfig struct {
	ID     string
	Engine *animengine.Engine
}

// AnimationController adapts an animengine.Engine into the
// blackboard-driven evaluate/publish cycle a Schedule drives each tick, by
// classifying blackboard paths under the `anim/player/<id>/...`
// convention into player commands and instance updates.
type AnimationController struct {
	id     string
	engine *animengine.Engine
}

// NewAnimationController builds a controller wrapping an already-populated
// engine (clips loaded, players/instances created by the caller). An empty
// cfg.ID falls back to "animation".
func NewAnimationController(cfg AnimationControllerConfig) *AnimationController {
	return &AnimationController{id: common.Coalesce(cfg.ID, "animation"), engine: cfg.Engine}
}

// pathKind discriminates a classified anim/ path: either a player command
// or an instance field update.
type pathKind struct {
	isCommand bool
	player    animengine.PlayerId
	action    string
	inst      animengine.InstId
	field     string
}

// classifyPath parses "anim/player/<id>/cmd/<action>" and
// "anim/player/<id>/instance/<inst>/<field>" addresses. Any other shape
// returns ok=false.
func classifyPath(p pathkey.TypedPath) (pathKind, bool) {
	ns := p.Namespaces()
	if len(ns) < 4 || ns[0] != "anim" || ns[1] != "player" {
		return pathKind{}, false
	}
	playerNum, err := strconv.ParseUint(ns[2], 10, 32)
	if err != nil {
		return pathKind{}, false
	}
	player := animengine.PlayerId(playerNum)

	switch ns[3] {
	case "cmd":
		return pathKind{isCommand: true, player: player, action: p.Target()}, true
	case "instance":
		if len(ns) < 5 {
			return pathKind{}, false
		}
		instNum, err := strconv.ParseUint(ns[4], 10, 32)
		if err != nil {
			return pathKind{}, false
		}
		return pathKind{isCommand: false, player: player, inst: animengine.InstId(instNum), field: p.Target()}, true
	default:
		return pathKind{}, false
	}
}

// mapBlackboardToInputs scans every blackboard entry, classifies its path,
// and assembles the player commands and instance updates it describes.
// Unknown actions/fields and type-mismatched values are silently skipped.
func mapBlackboardToInputs(bb *Blackboard) animengine.Inputs {
	var inputs animengine.Inputs
	bb.Iter(func(p pathkey.TypedPath, entry BlackboardEntry) {
		kind, ok := classifyPath(p)
		if !ok {
			return
		}
		if kind.isCommand {
			if cmd, ok := playerCommandFromAction(kind.player, kind.action, entry); ok {
				inputs.PlayerCmds = append(inputs.PlayerCmds, cmd)
			}
			return
		}
		if upd, ok := instanceUpdateFromField(kind.player, kind.inst, kind.field, entry); ok {
			inputs.InstanceUpdates = append(inputs.InstanceUpdates, upd)
		}
	})
	return inputs
}

func playerCommandFromAction(player animengine.PlayerId, action string, entry BlackboardEntry) (animengine.PlayerCommand, bool) {
	switch action {
	case "play":
		return animengine.PlayerCommand{Kind: animengine.PlayerPlay, Player: player}, true
	case "pause":
		return animengine.PlayerCommand{Kind: animengine.PlayerPause, Player: player}, true
	case "stop":
		return animengine.PlayerCommand{Kind: animengine.PlayerStop, Player: player}, true
	case "set_speed":
		f, ok := entry.Value.AsFloat()
		if !ok {
			return animengine.PlayerCommand{}, false
		}
		return animengine.PlayerCommand{Kind: animengine.PlayerSetSpeed, Player: player, Speed: f}, true
	case "seek":
		f, ok := entry.Value.AsFloat()
		if !ok {
			return animengine.PlayerCommand{}, false
		}
		return animengine.PlayerCommand{Kind: animengine.PlayerSeek, Player: player, Time: f}, true
	default:
		return animengine.PlayerCommand{}, false
	}
}

func instanceUpdateFromField(player animengine.PlayerId, inst animengine.InstId, field string, entry BlackboardEntry) (animengine.InstanceUpdate, bool) {
	upd := animengine.InstanceUpdate{Player: player, Inst: inst}
	switch field {
	case "weight":
		f, ok := entry.Value.AsFloat()
		if !ok {
			return upd, false
		}
		upd.Weight = &f
	case "time_scale":
		f, ok := entry.Value.AsFloat()
		if !ok {
			return upd, false
		}
		upd.TimeScale = &f
	case "start_offset":
		f, ok := entry.Value.AsFloat()
		if !ok {
			return upd, false
		}
		upd.StartOffset = &f
	case "enabled":
		b, ok := entry.Value.AsBool()
		if !ok {
			return upd, false
		}
		upd.Enabled = &b
	default:
		return upd, false
	}
	return upd, true
}

// Update maps the blackboard's current anim/ entries into engine inputs,
// ticks the engine, and returns the resulting write batch.
func (c *AnimationController) Update(dt float32, bb *Blackboard) (writebatch.WriteBatch, []animengine.Event, error) {
	inputs := mapBlackboardToInputs(bb)
	outputs, err := c.engine.Update(dt, inputs)
	if err != nil {
		return writebatch.WriteBatch{}, nil, err
	}
	return outputs.ToWriteBatch(), outputs.Events, nil
}
