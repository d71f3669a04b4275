// Package edit implements the undo/redo command core of reel. A Command is
// a reversible unit of work; a Service owns the two bounded history stacks
// and executes commands; a Batch groups several commands into one undoable
// step. The package knows nothing about songs or mixers: the concrete
// mutation targets are reached through small capability interfaces
// (Property, Collection, Placed, Sized) that the editing model implements.
//
// Everything here is single-goroutine: the stacks are owned by whichever
// goroutine owns the model, the same way the tracker model owns its song.
package edit

type (
	// Command is a reversible unit of state mutation. Execute applies the
	// change and Undo reverts it; Undo may only be called after a matching
	// Execute, and the pair must round-trip for any number of cycles.
	// Description is display text fixed at construction time; it is never
	// recomputed from current state, since the state may have changed by
	// undo time.
	Command interface {
		Execute() error
		Undo() error
		Description() string
	}

	// Coalescer is optionally implemented by commands that can absorb an
	// immediately following command into themselves, so that e.g. dragging
	// a fader produces one undo step instead of hundreds. Coalesce returns
	// false when the next command targets something else; the command must
	// then be left unmodified.
	Coalescer interface {
		Coalesce(next Command) bool
	}

	// Composite is an ordered group of commands executed and undone as one
	// atomic unit. Undo runs the children in strict reverse order of their
	// Execute.
	Composite struct {
		desc string
		cmds []Command
	}
)

// NewComposite wraps the given commands into a single command with the
// given description.
func NewComposite(desc string, cmds ...Command) *Composite {
	return &Composite{desc: desc, cmds: cmds}
}

func (c *Composite) Description() string { return c.desc }

// Len returns the number of child commands.
func (c *Composite) Len() int { return len(c.cmds) }

// Execute runs the children in order, stopping at the first failure. The
// children executed before the failure stay applied; individual commands
// are not transactional across a composite.
func (c *Composite) Execute() error {
	for _, cmd := range c.cmds {
		if err := cmd.Execute(); err != nil {
			return err
		}
	}
	return nil
}

// Undo reverts the children in reverse order, stopping at the first
// failure.
func (c *Composite) Undo() error {
	for i := len(c.cmds) - 1; i >= 0; i-- {
		if err := c.cmds[i].Undo(); err != nil {
			return err
		}
	}
	return nil
}
