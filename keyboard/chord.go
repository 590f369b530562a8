package keyboard

import (
	"strings"

	"github.com/pkg/errors"
)

// Modifier は修飾キーです。
type Modifier string

const (
	Ctrl  Modifier = "CTRL"
	Alt   Modifier = "ALT"
	Shift Modifier = "SHIFT"
	Win   Modifier = "WIN"
)

// Chord はキャプチャ直前に送るキー操作（例: "Ctrl+Shift+P"）です。
type Chord struct {
	Modifiers []Modifier
	Key       string
}

func (c Chord) String() string {
	parts := make([]string, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		parts = append(parts, string(m))
	}
	return strings.Join(append(parts, c.Key), "+")
}

// Parse はキー操作文字列を解析します。最後の要素がメインキー、それ以外は修飾キーです。
func Parse(s string) (Chord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Chord{}, errors.New("empty key chord")
	}
	parts := strings.Split(s, "+")
	var c Chord
	for i, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			return Chord{}, errors.Errorf("empty key in chord %q", s)
		}
		if i == len(parts)-1 {
			c.Key = p
			break
		}
		switch p {
		case "CTRL", "CONTROL":
			c.Modifiers = append(c.Modifiers, Ctrl)
		case "ALT":
			c.Modifiers = append(c.Modifiers, Alt)
		case "SHIFT":
			c.Modifiers = append(c.Modifiers, Shift)
		case "WIN":
			c.Modifiers = append(c.Modifiers, Win)
		default:
			return Chord{}, errors.Errorf("unknown modifier %q in chord %q", p, s)
		}
	}
	return c, nil
}
