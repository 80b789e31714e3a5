package metrics_test

import (
	"errors"
	"testing"

	"storefront/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", metrics.Result(nil))
	assert.Equal(t, "error", metrics.Result(errors.New("boom")))
}

func TestCartMutationsTotal(t *testing.T) {
	before := testutil.ToFloat64(metrics.CartMutationsTotal.WithLabelValues("add"))

	metrics.CartMutationsTotal.WithLabelValues("add").Inc()

	assert.InDelta(t, before+1, testutil.ToFloat64(metrics.CartMutationsTotal.WithLabelValues("add")), 0.0001)
}
