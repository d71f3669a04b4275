package edit

// Batch groups commands issued during one logical operation ("paste 5
// notes") into a single undoable step. Child commands are applied
// immediately, so intermediate state is visible while the operation runs,
// but they are recorded in the batch instead of being pushed to the stacks.
// End commits the recorded commands as one Composite.
//
// Batches are not reentrant and must be used from the goroutine that owns
// the Service. A batch is bound to the Service that created it; interleaving
// svc.Do calls while a batch is open puts those commands outside the batch.
type Batch struct {
	s    *Service
	desc string
	cmds []Command
	done bool
}

// BeginBatch starts a batch that will commit as one undo step with the
// given description.
func (s *Service) BeginBatch(desc string) *Batch {
	return &Batch{s: s, desc: desc}
}

// Do executes the command and records it in the batch. A failed command is
// not recorded; earlier children stay applied and stay recorded, so an End
// after a failure commits the partial batch. Callers that want nothing
// committed should validate preconditions before issuing commands.
func (b *Batch) Do(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	b.cmds = append(b.cmds, cmd)
	return nil
}

// Len returns the number of commands recorded so far.
func (b *Batch) Len() int { return len(b.cmds) }

// End commits the batch: the recorded commands are wrapped into one
// Composite and pushed onto the undo stack without re-executing them. An
// empty batch commits nothing. End is idempotent; calls after the first do
// nothing.
func (b *Batch) End() {
	if b.done {
		return
	}
	b.done = true
	if len(b.cmds) == 0 {
		return
	}
	cmd := NewComposite(b.desc, b.cmds...)
	b.s.redo = b.s.redo[:0]
	b.s.prevKind = ""
	b.s.coalesceRun = 0
	b.s.push(&b.s.undo, cmd)
	b.s.notify(EventExecute, cmd.Description())
}
