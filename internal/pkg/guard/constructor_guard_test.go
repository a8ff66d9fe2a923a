package guard_test

import (
	"errors"
	"sync"
	"testing"

	"waterdelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// TestConstructorGuardEmbedded shows the guard inside a command-like value.
func TestConstructorGuardEmbedded(t *testing.T) {
	type payment struct {
		bottles int
		guard   guard.ConstructorGuard
	}

	errPaymentNotConstructed := errors.New("payment must be created via newPayment")

	newPayment := func(bottles int) (payment, error) {
		if bottles <= 0 {
			return payment{}, errors.New("bottles must be positive")
		}
		return payment{bottles: bottles, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed", func(t *testing.T) {
		p, err := newPayment(3)
		require.NoError(t, err)
		require.NoError(t, p.guard.Validate(errPaymentNotConstructed))
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		p, err := newPayment(0)
		require.Error(t, err)
		assert.Equal(t, errPaymentNotConstructed, p.guard.Validate(errPaymentNotConstructed))
	})

	t.Run("literal", func(t *testing.T) {
		p := payment{bottles: 2}
		assert.Equal(t, errPaymentNotConstructed, p.guard.Validate(errPaymentNotConstructed))
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(validationError))
		}()
	}
	wg.Wait()
}
