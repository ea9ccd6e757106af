package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitter_NilSafety(t *testing.T) {
	t.Run("A nil emitter swallows events", func(t *testing.T) {
		// Given: no analytics configured
		var emitter *Emitter

		// When/Then: emitting and closing are harmless no-ops
		require.NotPanics(t, func() {
			emitter.Emit("game.start", map[string]any{"match_id": "none"})
		})
		require.NoError(t, emitter.Close())
	})
}
