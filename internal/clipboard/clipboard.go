// Package clipboard abstracts the OS clipboard so the poller can be driven
// by a fake in tests. Reads must tolerate empty or failed clipboards; the
// poller treats both as "no new content".
package clipboard

// Clipboard reads and writes the system clipboard as text.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}
