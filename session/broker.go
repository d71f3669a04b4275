package session

type (
	// Broker carries the notifications out of the editing session. It is
	// one-to-one communication for now: one channel for the UI (or whoever
	// is driving the session), plus a close/finished channel pair for the
	// file watcher goroutine. CloseWatcher has a capacity of 1 so a close
	// request can always be sent without blocking; FinishedWatcher is never
	// sent to, only closed, so "<-FinishedWatcher" waits until the watcher
	// has cleaned up.
	Broker struct {
		ToUI chan MsgToUI

		CloseWatcher    chan struct{}
		FinishedWatcher chan struct{}
	}

	// MsgToUI is a notification about the session. HistoryChanged messages
	// fire after every history stack change so the UI can refresh undo/redo
	// menu state; SongChanged fires when a whole new song replaces the
	// current one; FileChanged reports an external change to the loaded
	// file; Alert carries an error message for the user.
	MsgToUI struct {
		Kind   UIMessageKind
		Domain HistoryDomain // valid for HistoryChanged

		UndoDepth   int
		RedoDepth   int
		Description string

		Path  string // valid for FileChanged
		Alert string // valid for Alert
	}

	UIMessageKind int

	// HistoryDomain identifies which of the session's undo histories a
	// notification is about.
	HistoryDomain int
)

const (
	HistoryChanged UIMessageKind = iota
	SongChanged
	FileChanged
	Alert
)

const (
	ScoreDomain HistoryDomain = iota
	MixerDomain
)

func NewBroker() *Broker {
	return &Broker{
		ToUI:            make(chan MsgToUI, 1024),
		CloseWatcher:    make(chan struct{}, 1),
		FinishedWatcher: make(chan struct{}),
	}
}

// TrySend is a helper function to send a value to a channel if it is not
// full. It is guaranteed to be non-blocking. Returns true if the value was
// sent, false otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
