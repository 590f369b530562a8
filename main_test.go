package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarginFor(t *testing.T) {
	assert.Equal(t, 0, marginFor(screenCmd, 4, -1))
	assert.Equal(t, 4, marginFor(windowCmd, 4, -1))
	assert.Equal(t, 2, marginFor(clientCmd, 4, 2))
	assert.Equal(t, 0, marginFor(controlCmd, 4, 0))
}
