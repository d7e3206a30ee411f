//go:build !windows

package hotkey

func register(Combo, func()) (func(), error) { return nil, ErrUnsupported }
