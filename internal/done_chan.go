package internal

// DoneChan signals completion by being closed.
type DoneChan chan struct{}

// DoneFunc begins an asynchronous shutdown and returns a channel that
// closes once it finishes.
type DoneFunc func() DoneChan
