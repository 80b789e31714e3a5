package guard_test

import (
	"errors"
	"testing"

	"storefront/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("cart not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("Cart must be created via NewCart")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuardEmbedded shows the guard protecting a command-like value.
func TestConstructorGuardEmbedded(t *testing.T) {
	var errCommandNotConstructed = errors.New("SetQuantityCommand must be created via NewSetQuantityCommand")

	type setQuantityCommand struct {
		quantity int
		guard    guard.ConstructorGuard
	}

	newCommand := func(quantity int) setQuantityCommand {
		return setQuantityCommand{quantity: quantity, guard: guard.NewConstructorGuard()}
	}

	t.Run("constructed_command_validates", func(t *testing.T) {
		cmd := newCommand(2)

		require.NoError(t, cmd.guard.Validate(errCommandNotConstructed))
		assert.Equal(t, 2, cmd.quantity)
	})

	t.Run("literal_command_fails", func(t *testing.T) {
		cmd := setQuantityCommand{quantity: 2}

		assert.Equal(t, errCommandNotConstructed, cmd.guard.Validate(errCommandNotConstructed))
	})

	t.Run("copies_keep_their_state", func(t *testing.T) {
		cmd := newCommand(3)
		copied := cmd

		require.NoError(t, copied.guard.Validate(errCommandNotConstructed))
	})
}

func BenchmarkConstructorGuard(b *testing.B) {
	b.Run("Validate_Success", func(b *testing.B) {
		g := guard.NewConstructorGuard()
		err := errors.New("not constructed")
		b.ResetTimer()
		for range b.N {
			_ = g.Validate(err)
		}
	})
}
