// Package safe_close coordinates graceful shutdown of attached goroutines.
// 包 safe_close 协调已附加协程的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose fans a close signal out to every attached goroutine and
// waits for all of them to report done. The first error sent with the
// close signal wins.
// SafeClose 将关闭信号广播给所有已附加的协程并等待它们全部完成，
// 首个随关闭信号发送的错误会被保留
type SafeClose struct {
	mu sync.Mutex
	wg sync.WaitGroup

	closeSignal chan struct{}
	closed      bool
	err         error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts f in its own goroutine. f must call done() when it has
// fully stopped and must return promptly once closeSignal fires.
// Attach 在独立协程中启动 f。f 停止后必须调用 done()，
// 并在 closeSignal 触发后尽快返回
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(s.wg.Done, s.closeSignal)
}

// SendCloseSignal triggers shutdown; safe to call multiple times
// SendCloseSignal 触发关闭，可安全地多次调用
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached goroutine called done()
// WaitClosed 阻塞直到所有已附加的协程调用 done()
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
