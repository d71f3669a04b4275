package edit

type (
	// Property is the settable-value capability a SetCommand mutates
	// through. Implementations are typically tiny comparable structs (a
	// model pointer plus a channel or note identity), so two commands
	// targeting the same property have equal Property values; coalescing
	// relies on that.
	Property[T comparable] interface {
		Value() T
		SetValue(T)
	}

	// SetCommand stores an explicit old/new value pair for one property.
	// The caller snapshots the old value at the call site; the command
	// never reads it back from the target, so repeated execute/undo cycles
	// are stable even if something else mutated the target in between.
	SetCommand[T comparable] struct {
		desc     string
		prop     Property[T]
		old, new T
	}
)

// NewSet makes a command that sets prop to new on Execute and back to old
// on Undo.
func NewSet[T comparable](desc string, prop Property[T], old, new T) *SetCommand[T] {
	return &SetCommand[T]{desc: desc, prop: prop, old: old, new: new}
}

func (c *SetCommand[T]) Description() string { return c.desc }

func (c *SetCommand[T]) Execute() error {
	c.prop.SetValue(c.new)
	return nil
}

func (c *SetCommand[T]) Undo() error {
	c.prop.SetValue(c.old)
	return nil
}

// Coalesce absorbs a following set of the same property: the merged command
// keeps this command's old value and adopts the newer new value. Undoing
// the merged command then restores the value from before the whole run.
func (c *SetCommand[T]) Coalesce(next Command) bool {
	n, ok := next.(*SetCommand[T])
	if !ok || n.prop != c.prop {
		return false
	}
	c.new = n.new
	return true
}
