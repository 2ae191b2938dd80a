package gemini

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultMaxRetries は転送系エラーに対する再試行回数の上限です。
	DefaultMaxRetries = 3
	// DefaultInitialDelay は初回の待機時間です。以降は倍々で伸びます (2s, 4s, 8s)。
	DefaultInitialDelay = 2 * time.Second
)

// RetryPolicy は、どのエラーを何回・どの間隔で再試行するかの方針です。
// Retryable が true を返したエラーだけが再試行の対象になります。
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
	Retryable    func(error) bool
}

// DefaultRetryPolicy は転送系エラーのみを対象とする既定の方針を返します。
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		Retryable:    IsTransportUnavailable,
	}
}

// doWithRetry は op を有界ループで実行します。再帰は使いません。
// 再試行対象外のエラーは即座に返し、待機は context の中断に従います。
func doWithRetry[T any](ctx context.Context, policy RetryPolicy, op func(context.Context) (T, error)) (T, error) {
	var zero T

	delay := policy.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if policy.Retryable == nil || !policy.Retryable(err) || attempt == policy.MaxRetries {
			return zero, err
		}

		slog.Warn("リモート呼び出しに失敗しました。再試行します",
			"attempt", attempt+1, "delay", delay, "error", err)

		if err := sleepCtx(ctx, delay); err != nil {
			return zero, err
		}
		delay *= 2
	}
	return zero, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
