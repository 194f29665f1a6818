package clipboard

import "sync"

// Memory is an in-process clipboard used by tests.
type Memory struct {
	mu      sync.Mutex
	text    string
	readErr error
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.text, nil
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// FailReads makes subsequent reads return err; pass nil to recover.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}
