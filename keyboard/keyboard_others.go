//go:build !windows

package keyboard

import "RegionCapture/capture"

// Send は Windows 以外では送信できません。
func Send(c Chord) error {
	return capture.ErrUnsupportedPlatform
}
