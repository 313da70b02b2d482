package terminal

import "io"

type readResult struct {
	data []byte
	err  error
}

// feedReads copies blocking reads from r into reads until r fails or done closes
// Used by backends whose input handle cannot be polled
func feedReads(r io.Reader, reads chan<- readResult, done <-chan struct{}) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		data := make([]byte, n)
		copy(data, buf[:n])

		select {
		case reads <- readResult{data: data, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}
