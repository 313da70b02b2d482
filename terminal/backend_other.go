//go:build !unix && !windows

package terminal

import "errors"

var errUnsupported = errors.New("console backend not supported on this platform")

type unsupportedBackend struct{}

func newBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Init() error                          { return errUnsupported }
func (unsupportedBackend) Fini()                                {}
func (unsupportedBackend) Size() (int, int)                     { return fallbackWidth, fallbackHeight }
func (unsupportedBackend) Write([]byte) error                   { return errUnsupported }
func (unsupportedBackend) Read(<-chan struct{}) ([]byte, error) { return nil, errUnsupported }
