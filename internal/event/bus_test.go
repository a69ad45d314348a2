package event

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// TestPublishIsSynchronous 发布返回前所有 handler 都已执行
func TestPublishIsSynchronous(t *testing.T) {
	bus := NewBus()
	var received any
	bus.Subscribe(EventPause, func(evt any) {
		received = evt
	})

	sent := &PauseEvent{Paused: true}
	bus.Publish(EventPause, sent)

	if received != sent {
		t.Fatalf("handler 收到 %v, 期望 %v", received, sent)
	}
}

// TestPublishOrder handler 按订阅顺序执行
func TestPublishOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 0; i < 4; i++ {
		bus.Subscribe("order", func(any) { order = append(order, i) })
	}

	bus.Publish("order", nil)

	want := []int{0, 1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, 期望 %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, 期望 %v", order, want)
		}
	}
}

// TestPublishNoSubscribers 无订阅者时不 panic
func TestPublishNoSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish("nonexistent", "data")

	var nilBus *Bus
	nilBus.Publish(EventPause, nil)
}

// TestPanickingHandlerDoesNotStopOthers 某个 handler panic 不影响后续 handler
func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Subscribe("boom", func(any) { panic("boom") })
	bus.Subscribe("boom", func(any) { called = true })

	bus.Publish("boom", nil)

	if !called {
		t.Fatal("panic 之后的 handler 应该被调用")
	}
}

// TestEventsAreIsolated 不同事件名称互不干扰
func TestEventsAreIsolated(t *testing.T) {
	bus := NewBus()
	var pauseReceived, toggleReceived bool

	bus.Subscribe(EventPause, func(any) { pauseReceived = true })
	bus.Subscribe(EventRenderToggle, func(any) { toggleReceived = true })

	bus.Publish(EventPause, &PauseEvent{})

	if !pauseReceived {
		t.Error("pause handler 应该被调用")
	}
	if toggleReceived {
		t.Error("toggle handler 不应该被调用")
	}
}

// TestConcurrentSubscribeAndPublish 并发订阅和发布的线程安全性
func TestConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewBus()
	var count atomic.Int64
	bus.Subscribe("test", func(any) { count.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish("test", "data")
		}()
	}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Subscribe("test", func(any) { count.Add(1) })
		}()
	}
	wg.Wait()

	if count.Load() < 100 {
		t.Errorf("至少应该收到 100 次事件, 实际收到 %d 次", count.Load())
	}
}

// TestToggleKindString 测试 ToggleKind 的字符串表示
func TestToggleKindString(t *testing.T) {
	tests := []struct {
		kind     ToggleKind
		expected string
	}{
		{ToggleWireframe, "wireframe"},
		{ToggleDebugDraw, "debug_draw"},
		{ToggleKind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("ToggleKind(%d).String() = %q, 期望 %q", tt.kind, got, tt.expected)
		}
	}
}

// TestLogHandler 已知事件写入日志, 未知类型记录错误
func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	LogHandler(EventRenderToggle)(&RenderToggleEvent{Kind: ToggleWireframe, Enabled: true})
	LogHandler(EventScreenshot)(&ScreenshotEvent{Frame: 7})
	LogHandler(EventPause)("not an event")

	out := buf.String()
	for _, want := range []string{"flag=wireframe", "enabled=true", "frame=7", "Invalid event type"} {
		if !strings.Contains(out, want) {
			t.Errorf("日志应包含 %q, 实际: %q", want, out)
		}
	}
}
