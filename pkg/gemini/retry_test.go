package gemini

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: time.Millisecond,
		Retryable:    IsTransportUnavailable,
	}
}

func TestDoWithRetry(t *testing.T) {
	transient := errors.New("the model is overloaded")

	t.Run("一時的エラーは規定回数まで再試行するのだ", func(t *testing.T) {
		attempts := 0
		got, err := doWithRetry(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", transient
			}
			return "ok", nil
		})
		if err != nil {
			t.Fatalf("3回目で成功するはずが失敗した: %v", err)
		}
		if got != "ok" || attempts != 3 {
			t.Errorf("got=%q attempts=%d, want ok/3", got, attempts)
		}
	})

	t.Run("再試行しても駄目なら最後のエラーを返すのだ", func(t *testing.T) {
		attempts := 0
		_, err := doWithRetry(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
			attempts++
			return "", transient
		})
		if err == nil {
			t.Fatal("エラーが返らなかった")
		}
		if want := 1 + DefaultMaxRetries; attempts != want {
			t.Errorf("attempts = %d, want %d", attempts, want)
		}
	})

	t.Run("恒久的エラーは即座に諦めるのだ", func(t *testing.T) {
		permanent := errors.New("invalid argument")
		attempts := 0
		_, err := doWithRetry(context.Background(), fastPolicy(), func(ctx context.Context) (string, error) {
			attempts++
			return "", permanent
		})
		if !errors.Is(err, permanent) {
			t.Fatalf("元のエラーが失われた: %v", err)
		}
		if attempts != 1 {
			t.Errorf("attempts = %d, want 1", attempts)
		}
	})

	t.Run("コンテキスト取消で待機を打ち切るのだ", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		policy := fastPolicy()
		policy.InitialDelay = time.Hour
		attempts := 0
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()
		_, err := doWithRetry(ctx, policy, func(ctx context.Context) (string, error) {
			attempts++
			return "", transient
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("context.Canceled が返らなかった: %v", err)
		}
		if attempts != 1 {
			t.Errorf("取消後に再試行された: attempts = %d", attempts)
		}
	})
}

func TestIsTransportUnavailable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"overloadedメッセージ", errors.New("the model is overloaded, try again"), true},
		{"unavailableメッセージ", errors.New("service unavailable"), true},
		{"恒久的エラー", errors.New("invalid api key"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTransportUnavailable(tc.err); got != tc.want {
				t.Errorf("IsTransportUnavailable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
