package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lychee-technology/vitrin"
)

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewBreaker(3, time.Minute, time.Minute)

	b.RecordFailure()
	b.RecordFailure()
	assert.False(t, b.IsOpen())

	b.RecordFailure()
	assert.True(t, b.IsOpen())
}

func TestBreaker_SuccessResets(t *testing.T) {
	b := NewBreaker(2, time.Minute, time.Minute)

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	assert.False(t, b.IsOpen())
}

func TestBreaker_ClosesAfterOpenDuration(t *testing.T) {
	b := NewBreaker(1, time.Minute, 10*time.Millisecond)

	b.RecordFailure()
	require.True(t, b.IsOpen())

	time.Sleep(20 * time.Millisecond)
	assert.False(t, b.IsOpen())
}

func TestBreaker_NilIsNoop(t *testing.T) {
	var b *Breaker
	b.RecordFailure()
	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

// after enough upstream failures the client fails fast without sending
// further requests
func TestClient_BreakerShedsLoad(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	for i := 0; i < 5; i++ {
		_, err := client.FilterListings(context.Background(), &vitrin.QueryPayload{Status: "ACTIVE"})
		require.Error(t, err)
	}
	require.Equal(t, int32(5), atomic.LoadInt32(&calls))

	_, err := client.ListingByNo(context.Background(), "AB12CD34")
	require.Error(t, err)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls), "open breaker must not reach the server")
}
