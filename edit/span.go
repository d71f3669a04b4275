package edit

type (
	// Placed is the capability of items that sit at an integer position on
	// a timeline (e.g. the start row of a note).
	Placed interface {
		Position() int
		SetPosition(int)
	}

	// Sized is the capability of items with an integer duration (e.g. the
	// length of a note in rows).
	Sized interface {
		Duration() int
		SetDuration(int)
	}

	// MoveCommand shifts a set of items by a delta. The old/new position
	// pairs are computed once at construction, so the command swaps between
	// two fixed states no matter how often it is cycled.
	MoveCommand struct {
		desc  string
		items []movePair
	}

	movePair struct {
		item     Placed
		old, new int
	}

	// ResizeCommand is the same pairing pattern over a duration scalar.
	ResizeCommand struct {
		desc  string
		items []resizePair
	}

	resizePair struct {
		item     Sized
		old, new int
	}
)

// NewMove makes a command that shifts every item by delta, clamped so that
// no position goes below zero.
func NewMove(desc string, delta int, items ...Placed) *MoveCommand {
	pairs := make([]movePair, len(items))
	for i, item := range items {
		old := item.Position()
		pairs[i] = movePair{item: item, old: old, new: max(old+delta, 0)}
	}
	return &MoveCommand{desc: desc, items: pairs}
}

func (c *MoveCommand) Description() string { return c.desc }

func (c *MoveCommand) Execute() error {
	for _, p := range c.items {
		p.item.SetPosition(p.new)
	}
	return nil
}

func (c *MoveCommand) Undo() error {
	for i := len(c.items) - 1; i >= 0; i-- {
		c.items[i].item.SetPosition(c.items[i].old)
	}
	return nil
}

// NewResize makes a command that grows or shrinks every item by delta,
// clamped so that no duration goes below one.
func NewResize(desc string, delta int, items ...Sized) *ResizeCommand {
	pairs := make([]resizePair, len(items))
	for i, item := range items {
		old := item.Duration()
		pairs[i] = resizePair{item: item, old: old, new: max(old+delta, 1)}
	}
	return &ResizeCommand{desc: desc, items: pairs}
}

func (c *ResizeCommand) Description() string { return c.desc }

func (c *ResizeCommand) Execute() error {
	for _, p := range c.items {
		p.item.SetDuration(p.new)
	}
	return nil
}

func (c *ResizeCommand) Undo() error {
	for i := len(c.items) - 1; i >= 0; i-- {
		c.items[i].item.SetDuration(c.items[i].old)
	}
	return nil
}
