//go:build !windows

package winterm

import "errors"

// NewConsole is only available on Windows. On other platforms, construct a
// Terminal with WithConsole and a Console implementation of your own.
func NewConsole() (Console, error) {
	return nil, errors.New("winterm: no native console on this platform")
}
