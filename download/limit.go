package download

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// limitedReader throttles reads with a token bucket holding one second of traffic.
type limitedReader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
	burst   int
}

func newLimitedReader(ctx context.Context, r io.Reader, bytesPerSecond int) *limitedReader {
	burst := max(bytesPerSecond, 1024)
	return &limitedReader{
		ctx:     ctx,
		r:       r,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), burst),
		burst:   burst,
	}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if len(p) > l.burst {
		p = p[:l.burst]
	}

	n, err := l.r.Read(p)
	if n > 0 {
		if waitErr := l.limiter.WaitN(l.ctx, n); waitErr != nil {
			return n, waitErr
		}
	}
	return n, err
}
