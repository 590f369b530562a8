package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseControlRef(t *testing.T) {
	cases := []struct {
		id   string
		want controlRef
		ok   bool
	}{
		{"1001", controlRef{dlgID: 1001}, true},
		{"Edit1", controlRef{class: "Edit", instance: 1}, true},
		{" Button12 ", controlRef{class: "Button", instance: 12}, true},
		{"WindowsForms10.EDIT.app.0.1", controlRef{class: "WindowsForms10.EDIT.app.0.", instance: 1}, true},
		{"Edit", controlRef{}, false},
		{"Edit0", controlRef{}, false},
		{"0", controlRef{}, false},
		{"", controlRef{}, false},
	}
	for _, c := range cases {
		got, ok := parseControlRef(c.id)
		assert.Equal(t, c.ok, ok, c.id)
		assert.Equal(t, c.want, got, c.id)
	}
}
