package terminal

// Backend abstracts platform-specific console operations
type Backend interface {
	// Init enters raw mode and enables VT processing where the platform needs it
	Init() error
	Fini()

	Size() (width, height int)

	// Write writes raw bytes to the console output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	// A nil slice with nil error is a poll timeout
	Read(stopCh <-chan struct{}) ([]byte, error)
}

// fallbackSize is reported when the platform cannot query the window
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)
