//go:build windows

package keyboard

import (
	"github.com/dacapoday/sendinput"
	"github.com/pkg/errors"
)

var modifierCodes = map[Modifier]sendinput.KeyCode{
	Ctrl:  sendinput.KEY_LCONTROL,
	Alt:   sendinput.KEY_LMENU,
	Shift: sendinput.KEY_LSHIFT,
	Win:   sendinput.KEY_LWIN,
}

// Send はキー操作を1回送信します。修飾キーを押し、メインキーを押して離し、修飾キーを逆順に離します。
func Send(c Chord) error {
	main := keyCode(c.Key)
	if main == 0 {
		return errors.Errorf("unknown key %q", c.Key)
	}
	var pressed []sendinput.KeyCode
	defer func() {
		// 修飾キーを離す（逆順）
		for i := len(pressed) - 1; i >= 0; i-- {
			_ = sendinput.SendKeyboardInput(pressed[i], false)
		}
	}()
	for _, m := range c.Modifiers {
		code := modifierCodes[m]
		if err := sendinput.SendKeyboardInput(code, true); err != nil {
			return errors.Wrapf(err, "press %s", m)
		}
		pressed = append(pressed, code)
	}
	if err := sendinput.SendKeyboardInput(main, true); err != nil {
		return errors.Wrapf(err, "press %s", c.Key)
	}
	if err := sendinput.SendKeyboardInput(main, false); err != nil {
		return errors.Wrapf(err, "release %s", c.Key)
	}
	return nil
}

func keyCode(key string) sendinput.KeyCode {
	if code := sendinput.Key(key); code != 0 {
		return code
	}
	// 英数字1文字は仮想キーコードと同じ値
	if len(key) == 1 {
		ch := key[0]
		if (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			return sendinput.KeyCode(ch)
		}
	}
	return 0
}
