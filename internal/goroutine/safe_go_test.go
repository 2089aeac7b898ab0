package goroutine

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSafeGo_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	SafeGo(func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not finish")
	}
}

func TestSafeGoWithContext_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	got := make(chan any, 1)

	SafeGoWithContext(ctx, logrus.Fields{"op": "test"}, func(ctx context.Context) {
		got <- ctx.Value(key{})
	})

	select {
	case v := <-got:
		assert.Equal(t, "v", v)
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}
