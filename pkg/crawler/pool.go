package crawler

import (
	"container/list"
	"sync"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// workPool runs submitted funcs on a fixed set of workers that share a single
// unbounded FIFO. Submit never blocks, so a task may enqueue its children
// from inside a worker.
type workPool struct {
	queue     *list.List
	queueMu   sync.Mutex
	queueCond *sync.Cond
	closed    bool
	workers   conc.WaitGroup
	catcher   panics.Catcher
	size      int
}

func newWorkPool(size int) *workPool {
	if size < 1 {
		size = 1
	}
	p := &workPool{queue: list.New(), size: size}
	p.queueCond = sync.NewCond(&p.queueMu)
	for i := 0; i < size; i++ {
		p.workers.Go(p.work)
	}
	return p
}

func (p *workPool) submit(fn func()) {
	p.queueMu.Lock()
	p.queue.PushBack(fn)
	p.queueMu.Unlock()
	p.queueCond.Signal()
}

func (p *workPool) work() {
	for {
		p.queueMu.Lock()
		for p.queue.Len() == 0 && !p.closed {
			p.queueCond.Wait()
		}
		if p.queue.Len() == 0 {
			p.queueMu.Unlock()
			return
		}
		elem := p.queue.Front()
		fn := p.queue.Remove(elem).(func())
		p.queueMu.Unlock()

		p.catcher.Try(fn)
	}
}

// failed reports whether any submitted func has panicked
func (p *workPool) failed() bool {
	return p.catcher.Recovered() != nil
}

// close drains the queue, stops the workers and returns the first panic as
// an error
func (p *workPool) close() error {
	p.queueMu.Lock()
	p.closed = true
	p.queueMu.Unlock()
	p.queueCond.Broadcast()

	p.workers.Wait()
	if r := p.catcher.Recovered(); r != nil {
		return r.AsError()
	}
	return nil
}
