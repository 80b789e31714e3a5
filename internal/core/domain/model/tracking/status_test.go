package tracking_test

import (
	"testing"

	"storefront/internal/core/domain/model/tracking"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range []tracking.Status{tracking.InProgress, tracking.Delivered, tracking.Cancelled} {
		require.NoError(t, s.Validate(), s.String())
	}

	for _, s := range []tracking.Status{tracking.Unknown, tracking.Status(42)} {
		err := s.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "Unknown", s.String())
	}
}

func TestStatus_Transitions(t *testing.T) {
	testCases := []struct {
		from          tracking.Status
		deliverOK     bool
		cancelOK      bool
		expectedFinal bool
	}{
		{tracking.InProgress, true, true, false},
		{tracking.Delivered, false, false, true},
		{tracking.Cancelled, false, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String(), func(t *testing.T) {
			assert.Equal(t, tc.expectedFinal, tc.from.IsFinal())

			delivered, err := tc.from.Deliver()
			if tc.deliverOK {
				require.NoError(t, err)
				assert.Equal(t, tracking.Delivered, delivered)
			} else {
				require.ErrorIs(t, err, tracking.ErrTrackingIsTerminal)
				assert.Equal(t, tc.from, delivered)
			}

			cancelled, err := tc.from.Cancel()
			if tc.cancelOK {
				require.NoError(t, err)
				assert.Equal(t, tracking.Cancelled, cancelled)
			} else {
				require.ErrorIs(t, err, tracking.ErrTrackingIsTerminal)
				assert.Equal(t, tc.from, cancelled)
			}
		})
	}
}
