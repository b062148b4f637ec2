package observable

import (
	"fmt"
	"sync"

	"operator_console/pkg/logger"
	"operator_console/pkg/metrics"

	"go.uber.org/zap"
)

// Observer 收到目前完整狀態快照
type Observer[T any] func(state T)

// Handle Subscribe 回傳的識別碼，用於 Unsubscribe
type Handle uint64

type entry[T any] struct {
	id Handle
	fn Observer[T]
}

// Option store 選項
type Option[T any] func(*Store[T])

// WithClone 每次派送前複製快照，subscriber 拿到的 map/slice 不與 store 共用
func WithClone[T any](clone func(T) T) Option[T] {
	return func(s *Store[T]) {
		s.clone = clone
	}
}

// Store 持有一份狀態與有序 subscriber 列表
type Store[T any] struct {
	name string

	mu     sync.Mutex
	state  T
	subs   []entry[T]
	nextID Handle
	clone  func(T) T

	// 同一個 store 的派送依 Notify 順序進行
	deliver sync.Mutex
}

// NewStore 建立 store
func NewStore[T any](name string, initial T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{name: name, state: initial}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name store 名稱 (log / metrics label)
func (s *Store[T]) Name() string {
	return s.name
}

// Subscribe 註冊 subscriber，不去重
func (s *Store[T]) Subscribe(fn Observer[T]) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.subs = append(s.subs, entry[T]{id: s.nextID, fn: fn})
	return s.nextID
}

// Unsubscribe 移除第一個符合的 subscriber，不存在則忽略
func (s *Store[T]) Unsubscribe(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.subs {
		if e.id == h {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Len 目前 subscriber 數量
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Get 讀取目前狀態
func (s *Store[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Set 只更新狀態，不通知
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.state = v
	s.mu.Unlock()
}

// Update 在鎖內修改狀態，不通知
func (s *Store[T]) Update(fn func(*T)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
}

// Publish Set + Notify
func (s *Store[T]) Publish(v T) {
	s.Set(v)
	s.Notify()
}

// Notify 依訂閱順序同步呼叫每個 subscriber
// subscriber 不可在 callback 內對同一個 store 再呼叫 Notify
func (s *Store[T]) Notify() {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	snapshot := s.snapshotLocked()
	subs := make([]entry[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	metrics.IncStoreNotification(s.name)
	for _, e := range subs {
		s.call(e, snapshot)
	}
}

func (s *Store[T]) call(e entry[T], snapshot T) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IncSubscriberPanic(s.name)
			logger.Log.Error("subscriber panic",
				zap.String("store", s.name),
				zap.Uint64("handle", uint64(e.id)),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	e.fn(snapshot)
}

func (s *Store[T]) snapshotLocked() T {
	if s.clone != nil {
		return s.clone(s.state)
	}
	return s.state
}
