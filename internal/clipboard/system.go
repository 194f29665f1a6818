package clipboard

import (
	"fmt"
	"sync"

	xclip "golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// System is the real OS clipboard.
type System struct{}

// NewSystem initializes the OS clipboard binding. Initialization is
// process-wide and happens once; a failure (e.g. no display server) is
// returned to the caller rather than deferred to the first read.
func NewSystem() (*System, error) {
	initOnce.Do(func() {
		initErr = xclip.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("init clipboard: %w", initErr)
	}
	return &System{}, nil
}

func (s *System) Read() (string, error) {
	return string(xclip.Read(xclip.FmtText)), nil
}

func (s *System) Write(text string) error {
	xclip.Write(xclip.FmtText, []byte(text))
	return nil
}
