//go:build !windows

package action

import "github.com/go-vgo/robotgo"

// Click moves the pointer and clicks the left button through robotgo.
func Click(x, y int) error {
	robotgo.Move(x, y)
	robotgo.Click("left")
	return nil
}

// ForegroundWindowTitle returns the title of the active window.
func ForegroundWindowTitle() (string, error) {
	return robotgo.GetTitle(), nil
}
