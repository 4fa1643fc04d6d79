package animengine

// PlayerCmdKind discriminates the action a PlayerCommand applies.
type PlayerCmdKind int

const (
	// PlayerPlay sets the player's speed to 1 (resume).
	PlayerPlay PlayerCmdKind = iota
	// PlayerPause sets speed to 0.
	PlayerPause
	// PlayerStop sets speed to 0 and resets time to the player's start.
	PlayerStop
	// PlayerSetSpeed sets an arbitrary speed multiplier.
	PlayerSetSpeed
	// PlayerSeek jumps to an absolute time in seconds.
	PlayerSeek
	// PlayerSetLoopMode changes the player's loop mode.
	PlayerSetLoopMode
	// PlayerSetWindow sets the player's [start, end] window and clamps
	// its current time into it.
	PlayerSetWindow
)

// PlayerCommand is one queued mutation of a player's shared clock. Only
// the fields relevant to Kind are read.
type PlayerCommand struct {
	Kind        PlayerCmdKind
	Player      PlayerId
	Speed       float32
	Time        float32
	Mode        LoopMode
	WindowStart float32
	WindowEnd   *float32
}

// InstanceUpdate sets zero or more of an instance's fields; nil pointers
// leave the corresponding field unchanged.
type InstanceUpdate struct {
	Player      PlayerId
	Inst        InstId
	Weight      *float32
	TimeScale   *float32
	StartOffset *float32
	Enabled     *bool
}

// Inputs batches the player commands and instance updates applied at the
// start of one Update call.
type Inputs struct {
	PlayerCmds      []PlayerCommand
	InstanceUpdates []InstanceUpdate
}
