package observable

import (
	"sync"
	"testing"

	"operator_console/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNotify_OrderAndLatestState(t *testing.T) {
	s := NewStore("test", 0)

	var calls []string
	s.Subscribe(func(v int) { calls = append(calls, "a", itoa(v)) })
	s.Subscribe(func(v int) { calls = append(calls, "b", itoa(v)) })

	s.Set(3)
	s.Notify()

	assert.Equal(t, []string{"a", "3", "b", "3"}, calls)
}

func TestSubscribe_NoDedup(t *testing.T) {
	s := NewStore("test", "")
	count := 0
	fn := func(string) { count++ }

	h1 := s.Subscribe(fn)
	h2 := s.Subscribe(fn)
	assert.NotEqual(t, h1, h2)

	s.Notify()
	assert.Equal(t, 2, count)

	s.Unsubscribe(h1)
	s.Notify()
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, s.Len())
}

func TestUnsubscribe_Absent(t *testing.T) {
	s := NewStore("test", 0)
	s.Subscribe(func(int) {})
	s.Unsubscribe(Handle(999))
	assert.Equal(t, 1, s.Len())
}

func TestNotify_PanicIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	prev := logger.Log
	logger.Log = logger.NewWithCore(core)
	defer func() { logger.Log = prev }()

	s := NewStore("panicky", 1)
	var got []int
	s.Subscribe(func(v int) { got = append(got, v) })
	s.Subscribe(func(int) { panic("boom") })
	s.Subscribe(func(v int) { got = append(got, v*10) })

	assert.NotPanics(t, s.Notify)
	assert.Equal(t, []int{1, 10}, got)
	assert.Equal(t, 1, logs.FilterMessage("subscriber panic").Len())
}

func TestSetAndUpdateDoNotNotify(t *testing.T) {
	s := NewStore("test", []int{})
	count := 0
	s.Subscribe(func([]int) { count++ })

	s.Set([]int{1})
	s.Update(func(v *[]int) { *v = append(*v, 2) })
	assert.Equal(t, 0, count)
	assert.Equal(t, []int{1, 2}, s.Get())

	s.Publish([]int{9})
	assert.Equal(t, 1, count)
}

func TestWithClone(t *testing.T) {
	s := NewStore("map", map[string]string{"k": "v"}, WithClone(func(m map[string]string) map[string]string {
		out := make(map[string]string, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}))

	s.Subscribe(func(m map[string]string) { m["k"] = "mutated" })
	s.Notify()

	assert.Equal(t, "v", s.Get()["k"])
}

func TestNotify_Concurrent(t *testing.T) {
	s := NewStore("concurrent", 0)
	var mu sync.Mutex
	count := 0
	s.Subscribe(func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.Publish(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, count)
}

func itoa(v int) string {
	return string(rune('0' + v))
}
