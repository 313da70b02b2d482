package input

// Key is a logical game key, independent of the physical binding
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyDown
	KeyUp // rotate
	KeyQuit
	KeyPause

	keyCount
)

var keyNames = [keyCount]string{
	KeyLeft:  "left",
	KeyRight: "right",
	KeyDown:  "down",
	KeyUp:    "rotate",
	KeyQuit:  "quit",
	KeyPause: "pause",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "unknown"
}
