package edit

type (
	// Service owns one undo history: two bounded LIFO stacks of commands.
	// Executing a new command always clears the redo stack, and the oldest
	// undo entry is silently dropped when the capacity is exceeded. One
	// Service is constructed per editing domain (score, mixer) and handed
	// to every view that edits that domain; there are no package-level
	// instances.
	Service struct {
		undo, redo []Command
		capacity   int
		onChange   func(Event)

		// coalescing state: a run of same-kind edits melts into the top
		// undo entry, up to coalesceMax consecutive merges.
		prevKind    string
		coalesceRun int
		coalesceMax int
	}

	// Event describes a change to the history stacks, published through the
	// notify hook so a UI can refresh its menu/button enabled state.
	Event struct {
		Kind        EventKind
		UndoDepth   int
		RedoDepth   int
		Description string // of the command involved; empty for Clear
	}

	EventKind int

	// Option configures a Service at construction.
	Option func(*Service)
)

const (
	EventExecute EventKind = iota
	EventUndo
	EventRedo
	EventClear
)

const (
	defaultCapacity    = 256
	defaultCoalesceMax = 10
)

// NewService makes an empty history with the given options.
func NewService(opts ...Option) *Service {
	s := &Service{capacity: defaultCapacity, coalesceMax: defaultCoalesceMax}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCapacity sets the maximum depth of each stack. Values below one are
// ignored.
func WithCapacity(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.capacity = n
		}
	}
}

// WithCoalesceLimit sets how many consecutive same-kind commands may melt
// into one undo entry. Zero disables coalescing.
func WithCoalesceLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.coalesceMax = n
		}
	}
}

// WithNotify sets the hook called after every stack change. The hook runs
// synchronously on the calling goroutine; it should not block.
func WithNotify(fn func(Event)) Option {
	return func(s *Service) { s.onChange = fn }
}

// Do executes the command and, if it succeeds, pushes it onto the undo
// stack and clears the redo stack. A failed command is not pushed; whatever
// it mutated before failing stays mutated.
func (s *Service) Do(cmd Command) error {
	return s.do(cmd, "")
}

// DoCoalesced is Do for commands that arrive in rapid runs (fader drags,
// keyboard repeats). Consecutive calls with the same non-empty kind merge
// into a single undo entry when the top command can absorb the new one, up
// to the configured run length. Anything else in between breaks the run.
func (s *Service) DoCoalesced(kind string, cmd Command) error {
	return s.do(cmd, kind)
}

func (s *Service) do(cmd Command, kind string) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	s.redo = s.redo[:0]
	if kind != "" && kind == s.prevKind && s.coalesceRun < s.coalesceMax && len(s.undo) > 0 {
		if top, ok := s.undo[len(s.undo)-1].(Coalescer); ok && top.Coalesce(cmd) {
			s.coalesceRun++
			s.notify(EventExecute, cmd.Description())
			return nil
		}
	}
	s.prevKind = kind
	s.coalesceRun = 0
	s.push(&s.undo, cmd)
	s.notify(EventExecute, cmd.Description())
	return nil
}

// Undo reverts the most recently executed command and moves it to the redo
// stack. It returns false without error when there is nothing to undo. When
// the command itself fails, it is dropped from the history entirely: its
// target may be partially reverted and the caller should treat the visible
// state as suspect.
func (s *Service) Undo() (bool, error) {
	if len(s.undo) == 0 {
		return false, nil
	}
	cmd := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.prevKind = ""
	if err := cmd.Undo(); err != nil {
		s.notify(EventUndo, cmd.Description())
		return false, err
	}
	s.push(&s.redo, cmd)
	s.notify(EventUndo, cmd.Description())
	return true, nil
}

// Redo re-applies the most recently undone command. Symmetric to Undo.
func (s *Service) Redo() (bool, error) {
	if len(s.redo) == 0 {
		return false, nil
	}
	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.prevKind = ""
	if err := cmd.Execute(); err != nil {
		s.notify(EventRedo, cmd.Description())
		return false, err
	}
	s.push(&s.undo, cmd)
	s.notify(EventRedo, cmd.Description())
	return true, nil
}

// UndoMultiple undoes up to n commands, stopping early when the stack runs
// out or a command fails. It returns the number of commands undone.
func (s *Service) UndoMultiple(n int) (int, error) {
	for i := 0; i < n; i++ {
		ok, err := s.Undo()
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
	}
	return n, nil
}

// RedoMultiple redoes up to n commands. Symmetric to UndoMultiple.
func (s *Service) RedoMultiple(n int) (int, error) {
	for i := 0; i < n; i++ {
		ok, err := s.Redo()
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
	}
	return n, nil
}

// Clear empties both stacks without executing or undoing anything. This is
// a hard reset, used e.g. after loading a new song.
func (s *Service) Clear() {
	if len(s.undo) == 0 && len(s.redo) == 0 {
		return
	}
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
	s.prevKind = ""
	s.notify(EventClear, "")
}

func (s *Service) CanUndo() bool { return len(s.undo) > 0 }
func (s *Service) CanRedo() bool { return len(s.redo) > 0 }

// UndoDepth returns the number of commands on the undo stack.
func (s *Service) UndoDepth() int { return len(s.undo) }

// RedoDepth returns the number of commands on the redo stack.
func (s *Service) RedoDepth() int { return len(s.redo) }

// UndoDescriptions lists the pending undo step descriptions, most recent
// first, for history menus.
func (s *Service) UndoDescriptions() []string { return descriptions(s.undo) }

// RedoDescriptions lists the pending redo step descriptions, most recent
// first.
func (s *Service) RedoDescriptions() []string { return descriptions(s.redo) }

func descriptions(stack []Command) []string {
	ret := make([]string, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		ret = append(ret, stack[i].Description())
	}
	return ret
}

func (s *Service) push(stack *[]Command, cmd Command) {
	if len(*stack) >= s.capacity {
		copy(*stack, (*stack)[len(*stack)-s.capacity+1:])
		*stack = (*stack)[:s.capacity-1]
	}
	*stack = append(*stack, cmd)
}

func (s *Service) notify(kind EventKind, desc string) {
	if s.onChange != nil {
		s.onChange(Event{Kind: kind, UndoDepth: len(s.undo), RedoDepth: len(s.redo), Description: desc})
	}
}
