package host

import (
	"fmt"

	"github.com/cbodonnell/pixelquest/pkg/log"
)

// Command is a request made off the frame loop. It runs on the loop
// during the next ProcessCommands.
type Command func(h *Host)

// Enqueue schedules cmd for the next frame. It fails with queue.ErrQueueFull
// when too many commands are pending.
func (h *Host) Enqueue(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command is nil")
	}
	if err := h.commands.Enqueue(cmd); err != nil {
		return fmt.Errorf("failed to enqueue command: %w", err)
	}
	return nil
}

// ProcessCommands runs every pending command in order and returns how
// many ran.
func (h *Host) ProcessCommands() int {
	cmds, err := h.commands.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read commands: %v", err)
		return 0
	}
	for _, cmd := range cmds {
		cmd(h)
	}
	if len(cmds) > 0 {
		log.Trace("Processed %d commands", len(cmds))
	}
	return len(cmds)
}
