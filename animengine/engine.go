package animengine

import (
	"fmt"
	"sync"

	"github.com/brindlerun/animaflow/blend"
	"github.com/brindlerun/animaflow/clip"
	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/sampling"
	"github.com/gechr/clog"
)

// loadedAnim is a validated clip plus its binding table.
type loadedAnim struct {
	data    clip.AnimationData
	binding BindingTable
}

// playerSlot is one shared time base: speed, time, loop mode, and an
// optional [startTime, endTime] window, hosting a set of instances.
type playerSlot struct {
	id            PlayerId
	name          string
	speed         float32
	time          float32
	mode          LoopMode
	startTime     float32
	endTime       *float32
	totalDuration float32
	instances     []InstId
	done          bool
}

func (p *playerSlot) windowEnd() float32 {
	if p.endTime != nil {
		return *p.endTime
	}
	return p.startTime + p.totalDuration
}

// instanceRec is one animation bound to a player: a weight, time scale,
// start offset, and enabled flag layered on top of the player's clock.
type instanceRec struct {
	id          InstId
	player      PlayerId
	anim        AnimId
	weight      float32
	timeScale   float32
	startOffset float32
	enabled     bool
}

// InstanceCfg is the configuration passed to AddInstance. Use
// DefaultInstanceCfg to start from the usual weight=1, time_scale=1,
// enabled values.
type InstanceCfg struct {
	Weight      float32
	TimeScale   float32
	StartOffset float32
	Enabled     bool
}

// DefaultInstanceCfg returns the conventional starting point for a new
// instance: full weight, unscaled time, no offset, enabled.
func DefaultInstanceCfg() InstanceCfg {
	return InstanceCfg{Weight: 1, TimeScale: 1, StartOffset: 0, Enabled: true}
}

// Engine owns every loaded clip, player, and instance. All mutating
// methods are safe for concurrent use; Update is expected to be called
// once per tick from a single goroutine, matching the single-threaded
// per-tick contract the rest of the runtime assumes.
type Engine struct {
	mu sync.Mutex

	anims    map[AnimId]*loadedAnim
	nextAnim AnimId

	players     []playerSlot
	playerIndex map[PlayerId]int
	nextPlayer  PlayerId

	instances     []instanceRec
	instanceIndex map[InstId]int
	nextInstance  InstId
}

// NewEngine constructs an empty Engine.
func NewEngine() *Engine {
	return &Engine{
		anims:         make(map[AnimId]*loadedAnim),
		playerIndex:   make(map[PlayerId]int),
		instanceIndex: make(map[InstId]int),
	}
}

// LoadAnimation validates and stores a clip, registering its default
// binding table (every track's own AnimatableID, parsed).
func (e *Engine) LoadAnimation(data clip.AnimationData) (AnimId, error) {
	if err := data.Validate(); err != nil {
		return 0, fmt.Errorf("animengine: load animation: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextAnim++
	id := e.nextAnim
	e.anims[id] = &loadedAnim{data: data, binding: buildDefaultBindingTable(&data)}
	clog.Debug().Uint64("anim", uint64(id)).Str("name", data.Name).Int("tracks", len(data.Tracks)).Msg("animation loaded")
	return id, nil
}

// Prebind upserts resolver overrides into anim's binding table. Channels
// the resolver declines to resolve keep their existing binding.
func (e *Engine) Prebind(anim AnimId, resolve Resolver) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	la, ok := e.anims[anim]
	if !ok {
		return ErrUnknownAnim
	}
	la.binding.applyResolver(anim, &la.data, resolve)
	clog.Debug().Uint64("anim", uint64(anim)).Msg("binding table prebound")
	return nil
}

// CreatePlayer creates a new playback cursor: a shared clock at time=0,
// speed=1, LoopRepeat mode, with no window set.
func (e *Engine) CreatePlayer(name string) PlayerId {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextPlayer++
	id := e.nextPlayer
	e.playerIndex[id] = len(e.players)
	e.players = append(e.players, playerSlot{id: id, name: name, speed: 1, mode: LoopRepeat})
	return id
}

// RemovePlayer removes a player and every instance it hosts.
func (e *Engine) RemovePlayer(id PlayerId) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.playerIndex[id]
	if !ok {
		return ErrUnknownPlayer
	}
	for _, iid := range append([]InstId(nil), e.players[idx].instances...) {
		e.removeInstanceLocked(iid)
	}
	e.removePlayerLocked(id)
	return nil
}

func (e *Engine) removePlayerLocked(id PlayerId) {
	idx, ok := e.playerIndex[id]
	if !ok {
		return
	}
	last := len(e.players) - 1
	if idx != last {
		e.players[idx] = e.players[last]
		e.playerIndex[e.players[idx].id] = idx
	}
	e.players = e.players[:last]
	delete(e.playerIndex, id)
}

// AddInstance binds anim to player under cfg, building the instance's
// binding set from every track of anim and recomputing the player's total
// duration.
func (e *Engine) AddInstance(player PlayerId, anim AnimId, cfg InstanceCfg) (InstId, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pIdx, ok := e.playerIndex[player]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	if _, ok := e.anims[anim]; !ok {
		return 0, ErrUnknownAnim
	}

	e.nextInstance++
	id := e.nextInstance
	e.instanceIndex[id] = len(e.instances)
	e.instances = append(e.instances, instanceRec{
		id: id, player: player, anim: anim,
		weight: cfg.Weight, timeScale: cfg.TimeScale, startOffset: cfg.StartOffset, enabled: cfg.Enabled,
	})
	e.players[pIdx].instances = append(e.players[pIdx].instances, id)
	e.recomputeTotalDurationLocked(pIdx)
	return id, nil
}

// RemoveInstance removes an instance from its hosting player and
// recomputes that player's total duration.
func (e *Engine) RemoveInstance(id InstId) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.instanceIndex[id]; !ok {
		return ErrUnknownInstance
	}
	e.removeInstanceLocked(id)
	return nil
}

func (e *Engine) removeInstanceLocked(id InstId) {
	idx, ok := e.instanceIndex[id]
	if !ok {
		return
	}
	player := e.instances[idx].player

	last := len(e.instances) - 1
	if idx != last {
		e.instances[idx] = e.instances[last]
		e.instanceIndex[e.instances[idx].id] = idx
	}
	e.instances = e.instances[:last]
	delete(e.instanceIndex, id)

	if pIdx, ok := e.playerIndex[player]; ok {
		e.players[pIdx].instances = removeInstID(e.players[pIdx].instances, id)
		e.recomputeTotalDurationLocked(pIdx)
	}
}

func removeInstID(ids []InstId, id InstId) []InstId {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// recomputeTotalDurationLocked implements the effective-player-span rule:
// the max across instances of remaining_local / |time_scale|, where
// remaining_local = max(0, anim_duration - start_offset) for time_scale >=
// 0 and max(0, start_offset) for time_scale < 0; clamped to the player's
// window when one is set.
func (e *Engine) recomputeTotalDurationLocked(pIdx int) {
	p := &e.players[pIdx]
	var maxSpan float32
	for _, iid := range p.instances {
		inst := &e.instances[e.instanceIndex[iid]]
		la, ok := e.anims[inst.anim]
		if !ok {
			continue
		}
		duration := la.data.DurationSeconds()

		var remaining float32
		if inst.timeScale >= 0 {
			remaining = maxF(0, duration-inst.startOffset)
		} else {
			remaining = maxF(0, inst.startOffset)
		}
		if inst.timeScale == 0 {
			continue
		}
		span := remaining / absF(inst.timeScale)
		if span > maxSpan {
			maxSpan = span
		}
	}
	if p.endTime != nil {
		p.totalDuration = minF(*p.endTime-p.startTime, maxSpan)
	} else {
		p.totalDuration = maxSpan
	}
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func absF(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}

// PlayerFinished reports whether a LoopOnce player has reached the end of
// its window. Always false for LoopRepeat/LoopPingPong players.
func (e *Engine) PlayerFinished(id PlayerId) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.playerIndex[id]
	if !ok {
		return false, ErrUnknownPlayer
	}
	return e.players[idx].done, nil
}

// PlayerTime reports a player's current shared clock value.
func (e *Engine) PlayerTime(id PlayerId) (float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.playerIndex[id]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	return e.players[idx].time, nil
}

// PlayerTotalDuration reports a player's cached total duration.
func (e *Engine) PlayerTotalDuration(id PlayerId) (float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.playerIndex[id]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	return e.players[idx].totalDuration, nil
}

// Update applies inputs, advances every player's shared clock by dt
// seconds, samples each enabled instance's tracks, blends same-handle
// contributions within a player via blend.Accumulator, and returns the
// aggregated Outputs.
func (e *Engine) Update(dt float32, inputs Inputs) (*Outputs, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := &Outputs{}
	e.applyPlayerCommands(inputs.PlayerCmds)
	e.applyInstanceUpdates(inputs.InstanceUpdates)
	for i := range e.players {
		e.recomputeTotalDurationLocked(i)
	}

	for i := range e.players {
		p := &e.players[i]
		wasDone := p.done
		p.time = advancePlayerTime(p.time, dt, p.speed, p.mode, p.startTime, p.windowEnd())
		p.done = p.mode == LoopOnce && p.time >= p.windowEnd()
		if p.done && !wasDone {
			out.Events = append(out.Events, Event{Kind: EventPlaybackEnded, Player: p.id})
		}

		accs := make(map[string]*blend.Accumulator)
		order := make([]string, 0)
		paths := make(map[string]pathkey.TypedPath)

		for _, iid := range p.instances {
			inst := &e.instances[e.instanceIndex[iid]]
			if !inst.enabled || inst.weight <= 0 {
				continue // a weight <= 0 contribution is ignored, so it opens no output either
			}
			la, ok := e.anims[inst.anim]
			if !ok {
				continue // sampling a non-existent clip aborts that instance only
			}
			duration := la.data.DurationSeconds()
			localT := p.time*inst.timeScale + inst.startOffset
			folded := foldLocal(localT, duration, p.mode)
			u := float32(0)
			if duration > 0 {
				u = folded / duration
			}

			for ti := range la.data.Tracks {
				tr := &la.data.Tracks[ti]
				if len(tr.Points) == 0 {
					continue
				}
				handle, ok := la.binding.handleFor(ti, tr)
				if !ok {
					continue
				}
				key := handle.String()
				acc, ok := accs[key]
				if !ok {
					acc = &blend.Accumulator{}
					accs[key] = acc
					order = append(order, key)
					paths[key] = handle
				}
				acc.Add(sampling.Track(*tr, u), inst.weight)
			}
		}

		for _, key := range order {
			out.Entries = append(out.Entries, Change{
				Player: p.id,
				Path:   paths[key],
				Value:  accs[key].Finalize(),
			})
		}
	}
	return out, nil
}

func (e *Engine) applyPlayerCommands(cmds []PlayerCommand) {
	for _, c := range cmds {
		idx, ok := e.playerIndex[c.Player]
		if !ok {
			continue // unknown PlayerId in inputs is silently ignored
		}
		p := &e.players[idx]
		switch c.Kind {
		case PlayerPlay:
			p.speed = 1
		case PlayerPause:
			p.speed = 0
		case PlayerStop:
			p.speed = 0
			p.time = p.startTime
		case PlayerSetSpeed:
			p.speed = c.Speed
		case PlayerSeek:
			p.time = c.Time
		case PlayerSetLoopMode:
			p.mode = c.Mode
		case PlayerSetWindow:
			p.startTime = c.WindowStart
			p.endTime = c.WindowEnd
			p.time = clampF(p.time, p.startTime, p.windowEnd())
		}
	}
}

func (e *Engine) applyInstanceUpdates(updates []InstanceUpdate) {
	for _, u := range updates {
		idx, ok := e.instanceIndex[u.Inst]
		if !ok {
			continue // unknown InstId in inputs is silently ignored
		}
		inst := &e.instances[idx]
		if u.Weight != nil {
			inst.weight = *u.Weight
		}
		if u.TimeScale != nil {
			inst.timeScale = *u.TimeScale
		}
		if u.StartOffset != nil {
			inst.startOffset = *u.StartOffset
		}
		if u.Enabled != nil {
			inst.enabled = *u.Enabled
		}
	}
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
