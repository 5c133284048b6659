package ecs

import "sync/atomic"

// CommandKind identifies the deferred mutation a Command represents.
type CommandKind int

const (
	CmdAdd CommandKind = iota
	CmdSet
	CmdRemove
	CmdDestroy
)

// Command is one staged deferred mutation. Payload bytes (for Add/Set) live
// in the buffer's byte arena at StageOffset/StageLen; Remove/Destroy carry
// no payload.
type Command struct {
	Kind        CommandKind
	TypeID      ComponentTypeId
	TypeName    string
	EntityIdx   uint32
	StageOffset uint32
	StageLen    uint32
}

// CommandBuffer is an append-only mutation list plus the byte arena backing
// its payloads. spec.md §5 confines World mutation to the driver thread or a
// system it invokes directly, but a system's own body may fan work out to
// job-system worker goroutines that each stage commands concurrently (see
// cmd/enginedemo's integrateVelocitySystem) — so Push reserves its command
// slot and payload range with atomic bump-allocation, the same
// reserve-an-index-then-bounds-check pattern Deque and HandlePool already
// use, rather than a mutex. World.FlushCommands is the only consumer, run
// only after every job touching the buffer has been Waited on, so readers
// never race writers; Clear resets both cursors at the end of a frame.
type CommandBuffer struct {
	cmds     []Command
	cmdTop   atomic.Int32
	stage    []byte
	stageTop atomic.Uint32
}

// NewCommandBuffer builds a buffer that can hold up to maxCmds commands
// whose payloads together fit in stageSize bytes.
func NewCommandBuffer(maxCmds, stageSize int) *CommandBuffer {
	return &CommandBuffer{
		cmds:  make([]Command, maxCmds),
		stage: make([]byte, stageSize),
	}
}

// Push appends cmd, copying payload (if non-nil) into the byte arena and
// recording its offset/length on the stored Command. Returns ErrOutOfSpace
// if either the byte arena or the command list is full. Safe to call
// concurrently from multiple goroutines.
func (b *CommandBuffer) Push(cmd Command, payload []byte) error {
	if len(payload) > 0 {
		n := uint32(len(payload))
		start := b.stageTop.Add(n) - n
		if int(start)+len(payload) > len(b.stage) {
			return ErrOutOfSpace
		}
		cmd.StageOffset = start
		cmd.StageLen = n
		copy(b.stage[start:], payload)
	}
	idx := b.cmdTop.Add(1) - 1
	if int(idx) >= len(b.cmds) {
		return ErrOutOfSpace
	}
	b.cmds[idx] = cmd
	return nil
}

// Len returns the number of successfully staged commands.
func (b *CommandBuffer) Len() int {
	n := int(b.cmdTop.Load())
	if n > len(b.cmds) {
		return len(b.cmds)
	}
	return n
}

// At returns the i'th staged command and its payload slice (nil if none).
func (b *CommandBuffer) At(i int) (Command, []byte) {
	c := b.cmds[i]
	if c.StageLen == 0 {
		return c, nil
	}
	return c, b.stage[c.StageOffset : c.StageOffset+c.StageLen]
}

// Clear resets both cursors to zero without releasing the underlying
// arrays.
func (b *CommandBuffer) Clear() {
	b.cmdTop.Store(0)
	b.stageTop.Store(0)
}
