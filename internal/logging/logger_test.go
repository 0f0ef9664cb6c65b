package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("quiet drops debug messages", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, false)
		log.V(1).Info("skipping directory", "dir", "vendor")
		assert.Empty(t, buf.String())

		log.Info("discovery finished")
		assert.Contains(t, buf.String(), "discovery finished")
	})

	t.Run("verbose keeps debug messages", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, true)
		log.V(1).Info("skipping directory", "dir", "vendor")
		assert.Contains(t, buf.String(), "skipping directory")
		assert.Contains(t, buf.String(), "vendor")
	})
}
