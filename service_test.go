//go:build !v8

package funcbox

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := New(Options{DataDir: t.TempDir()})
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestService_SubmitAndInvoke(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Submit("add", "1 + 2"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	res, err := svc.Invoke(context.Background(), "add")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if res.Value != "3" {
		t.Fatalf("Value = %q, want 3", res.Value)
	}
	if res.Duration <= 0 {
		t.Fatalf("Duration = %v", res.Duration)
	}
}

func TestService_InvokeUnknown(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Invoke(context.Background(), "ghost")
	if !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("Invoke error = %v, want ErrUnknownFunction", err)
	}
}

func TestService_SubmitInvalidName(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Submit("no1", "1"); !errors.Is(err, ErrInvalidFunctionName) {
		t.Fatalf("Submit error = %v, want ErrInvalidFunctionName", err)
	}
}

func TestService_SubmitInvalidSource(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Submit("broken", "function {"); !errors.Is(err, ErrInvalidSource) {
		t.Fatalf("Submit error = %v, want ErrInvalidSource", err)
	}
}

func TestService_StatePersistsAcrossInvocations(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Submit("inc", "set('n', (get('n') || 0) + 1)"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	for want := 1; want <= 3; want++ {
		res, err := svc.Invoke(context.Background(), "inc")
		if err != nil {
			t.Fatalf("Invoke %d: %v", want, err)
		}
		if res.Value != strconv.Itoa(want) {
			t.Fatalf("Invoke %d returned %q", want, res.Value)
		}
	}
}

func TestService_StateIsolatedBetweenFunctions(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Submit("writer", "set('secret', 7)"); err != nil {
		t.Fatalf("Submit writer: %v", err)
	}
	if err := svc.Submit("reader", "get('secret')"); err != nil {
		t.Fatalf("Submit reader: %v", err)
	}
	if _, err := svc.Invoke(context.Background(), "writer"); err != nil {
		t.Fatalf("Invoke writer: %v", err)
	}
	res, err := svc.Invoke(context.Background(), "reader")
	if err != nil {
		t.Fatalf("Invoke reader: %v", err)
	}
	if res.Value != "null" {
		t.Fatalf("reader sees writer's state: %q", res.Value)
	}
}

func TestService_ResubmitKeepsState(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Submit("f", "set('k', 9)"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Invoke(context.Background(), "f"); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if err := svc.Submit("f", "get('k')"); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	res, err := svc.Invoke(context.Background(), "f")
	if err != nil {
		t.Fatalf("Invoke after resubmit: %v", err)
	}
	if res.Value != "9" {
		t.Fatalf("Value = %q, want 9", res.Value)
	}
}

func TestService_ScriptErrorSurfaces(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Submit("boom", `throw new Error("kaput")`); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	_, err := svc.Invoke(context.Background(), "boom")
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("Invoke error = %v, want ScriptError", err)
	}
	if !strings.Contains(scriptErr.Message, "kaput") {
		t.Fatalf("message = %q", scriptErr.Message)
	}
}

func TestService_LogsReturned(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Submit("chatty", `log("one"); log("two"); null`); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	res, err := svc.Invoke(context.Background(), "chatty")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(res.Logs) != 2 || res.Logs[0].Message != "one" || res.Logs[1].Message != "two" {
		t.Fatalf("logs = %v", res.Logs)
	}
}

func TestService_CanceledWhileWaitingForSlot(t *testing.T) {
	svc := New(Options{DataDir: t.TempDir(), MaxConcurrent: 1})
	defer svc.Close()

	if err := svc.Submit("noop", "null"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Occupy the only slot, then invoke with an already-canceled context.
	svc.slots <- struct{}{}
	defer func() { <-svc.slots }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Invoke(ctx, "noop")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Invoke error = %v, want context.Canceled", err)
	}
}

func TestService_ConcurrentInvocations(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < 4; i++ {
		name := string(rune('a' + i))
		if err := svc.Submit(name, "set('k', "+strconv.Itoa(i)+")"); err != nil {
			t.Fatalf("Submit %s: %v", name, err)
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			_, errs[i] = svc.Invoke(context.Background(), name)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Invoke %d: %v", i, err)
		}
	}
}
