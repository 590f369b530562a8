package focus

import (
	"strconv"
	"strings"
	"unicode"
)

// controlRef はコントロール識別子を解析した結果です。
// "1001" はダイアログコントロール ID、"Edit2" は Edit クラスの2番目（ClassNN）を指します。
type controlRef struct {
	dlgID    int
	class    string
	instance int
}

func parseControlRef(id string) (controlRef, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return controlRef{}, false
	}
	if n, err := strconv.Atoi(id); err == nil {
		if n <= 0 {
			return controlRef{}, false
		}
		return controlRef{dlgID: n}, true
	}
	i := len(id)
	for i > 0 && unicode.IsDigit(rune(id[i-1])) {
		i--
	}
	if i == 0 || i == len(id) {
		return controlRef{}, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil || n <= 0 {
		return controlRef{}, false
	}
	return controlRef{class: id[:i], instance: n}, true
}
