package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Defaults(t *testing.T) {
	opts := Options{}
	opts.setDefaults()

	assert.Equal(t, DefaultSettleDelay, opts.SettleDelay)
	assert.Equal(t, 16, opts.BufferSize)
}

func TestOptions_CustomValues(t *testing.T) {
	opts := Options{SettleDelay: 20 * time.Millisecond, BufferSize: 2}
	opts.setDefaults()

	assert.Equal(t, 20*time.Millisecond, opts.SettleDelay)
	assert.Equal(t, 2, opts.BufferSize)
}
