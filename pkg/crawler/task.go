package crawler

import "sync/atomic"

// crawlTask crawls one URL and, through its children, everything below it.
// pending counts the task itself plus every child that has not completed;
// the task completes when it drops to zero, which in turn releases one unit
// of the parent's count. Workers never block on children.
type crawlTask struct {
	url     string
	depth   int
	state   *crawlState
	pool    *workPool
	parent  *crawlTask
	pending atomic.Int32
	onDone  func()
}

func newCrawlTask(url string, depth int, state *crawlState, pool *workPool, parent *crawlTask) *crawlTask {
	t := &crawlTask{url: url, depth: depth, state: state, pool: pool, parent: parent}
	t.pending.Store(1)
	return t
}

func (t *crawlTask) run() {
	defer t.release()

	links, next := t.state.visit(t.url, t.depth)
	if next <= 0 {
		return
	}
	for _, link := range links {
		child := newCrawlTask(link, next, t.state, t.pool, t)
		t.pending.Add(1)
		t.pool.submit(child.run)
	}
}

func (t *crawlTask) release() {
	if t.pending.Add(-1) != 0 {
		return
	}
	if t.parent != nil {
		t.parent.release()
		return
	}
	if t.onDone != nil {
		t.onDone()
	}
}
