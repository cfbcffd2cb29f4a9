package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays_succeeds_after_transient_failures(t *testing.T) {
	t.Parallel()

	attempts := 0
	fetch := func(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
		attempts++
		if attempts < 3 {
			return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "connection refused")
		}
		return &crawldoc.FetchResult{StatusCode: 200, Body: []byte("ok"), FinalURL: url}, nil
	}

	delays := []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
	result, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/", fetch, nil, delays)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 200, result.StatusCode)
}

func TestFetchWithRetryDelays_gives_up_after_all_attempts(t *testing.T) {
	t.Parallel()

	attempts := 0
	fetch := func(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
		attempts++
		return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "connection refused")
	}

	delays := []time.Duration{time.Millisecond, time.Millisecond}
	_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/", fetch, nil, delays)

	require.Error(t, err)
	assert.Equal(t, crawldoc.ETRANSPORT, crawldoc.ErrorCode(err))
	assert.Equal(t, 3, attempts, "one initial attempt plus one per delay")
}

func TestFetchWithRetryDelays_does_not_retry_HTTP_errors(t *testing.T) {
	t.Parallel()

	attempts := 0
	fetch := func(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
		attempts++
		return &crawldoc.FetchResult{StatusCode: 404, FinalURL: url}, nil
	}

	result, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/", fetch, nil, crawl.DefaultRetryDelays())

	require.NoError(t, err, "an HTTP response of any status is a completed fetch")
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 404, result.StatusCode)
}

func TestFetchWithRetryDelays_respects_cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
		cancel()
		return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "connection refused")
	}

	_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com/", fetch, nil, []time.Duration{time.Minute})

	assert.ErrorIs(t, err, context.Canceled)
}
