package astar

import (
	"cmp"
	"container/heap"
	"slices"
)

// PriorityQueueItem is a queued node plus its insertion sequence, used to
// break ties between equal f costs.
type PriorityQueueItem struct {
	Node         *SearchNode
	Sequence     uint64
	IndexInQueue int
}

// PriorityQueue is a min-heap on (f, insertion order).
type PriorityQueue []*PriorityQueueItem

func (queue PriorityQueue) Len() int { return len(queue) }
func (queue PriorityQueue) Less(i, j int) bool {
	if queue[i].Node.f != queue[j].Node.f {
		return queue[i].Node.f < queue[j].Node.f
	}
	return queue[i].Sequence < queue[j].Sequence
}
func (queue PriorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *PriorityQueue) Push(x any) {
	item := x.(*PriorityQueueItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *PriorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// OpenFrontier holds discovered but unexpanded nodes. Several entries may share
// a position; Accepts is the gate that keeps dominated ones out.
type OpenFrontier struct {
	queue      PriorityQueue
	byPosition map[Position][]*PriorityQueueItem
	sequence   uint64
}

// NewOpenFrontier returns an empty frontier.
func NewOpenFrontier() *OpenFrontier {
	f := &OpenFrontier{
		queue:      make(PriorityQueue, 0),
		byPosition: make(map[Position][]*PriorityQueueItem),
	}
	heap.Init(&f.queue)
	return f
}

// Len returns the number of queued entries, duplicates included.
func (f *OpenFrontier) Len() int { return f.queue.Len() }

// Insert queues node. The caller keeps f == g + h.
func (f *OpenFrontier) Insert(node *SearchNode) {
	item := &PriorityQueueItem{Node: node, Sequence: f.sequence}
	f.sequence++
	heap.Push(&f.queue, item)
	f.byPosition[node.position] = append(f.byPosition[node.position], item)
}

// ExtractMin removes the entry with the smallest f. Among equal f the first
// inserted wins.
func (f *OpenFrontier) ExtractMin() (*SearchNode, error) {
	if f.queue.Len() == 0 {
		return nil, ErrEmptyFrontier
	}
	item := heap.Pop(&f.queue).(*PriorityQueueItem)
	f.forget(item)
	return item.Node, nil
}

// Accepts reports whether no queued entry at candidate's position has
// f <= candidate.f.
func (f *OpenFrontier) Accepts(candidate *SearchNode) bool {
	for _, item := range f.byPosition[candidate.position] {
		if item.Node.f <= candidate.f {
			return false
		}
	}
	return true
}

// Contains reports whether any entry is queued at p.
func (f *OpenFrontier) Contains(p Position) bool {
	return len(f.byPosition[p]) > 0
}

// Positions returns the distinct queued positions in the order they were first
// queued.
func (f *OpenFrontier) Positions() []Position {
	firsts := make([]*PriorityQueueItem, 0, len(f.byPosition))
	for _, items := range f.byPosition {
		firsts = append(firsts, items[0])
	}
	slices.SortFunc(firsts, func(a, b *PriorityQueueItem) int {
		return cmp.Compare(a.Sequence, b.Sequence)
	})
	res := make([]Position, len(firsts))
	for i, item := range firsts {
		res[i] = item.Node.position
	}
	return res
}

func (f *OpenFrontier) forget(item *PriorityQueueItem) {
	items := f.byPosition[item.Node.position]
	for i, it := range items {
		if it == item {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}
	if len(items) == 0 {
		delete(f.byPosition, item.Node.position)
		return
	}
	f.byPosition[item.Node.position] = items
}
