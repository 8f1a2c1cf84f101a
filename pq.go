package fognav

// searchNode lives only for the duration of one search. parent is an index
// into the same node table, -1 for the start node.
type searchNode struct {
	cell         Coordinate
	parent       int
	g, h, f      float64
	indexInQueue int
}

// nodeTable owns every node discovered by one search.
type nodeTable struct {
	nodes []searchNode
	index map[Coordinate]int
}

func newNodeTable() nodeTable {
	return nodeTable{index: make(map[Coordinate]int)}
}

func (t *nodeTable) add(cell Coordinate, parent int, g, h float64) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, searchNode{
		cell:         cell,
		parent:       parent,
		g:            g,
		h:            h,
		f:            g + h,
		indexInQueue: -1,
	})
	t.index[cell] = id
	return id
}

// PriorityQueue orders node ids by f, breaking ties in favor of the lower h.
type PriorityQueue struct {
	table *nodeTable
	items []int
}

func (queue *PriorityQueue) Len() int { return len(queue.items) }

func (queue *PriorityQueue) Less(i, j int) bool {
	a, b := &queue.table.nodes[queue.items[i]], &queue.table.nodes[queue.items[j]]
	if a.f != b.f {
		return a.f < b.f
	}
	return a.h < b.h
}

func (queue *PriorityQueue) Swap(i, j int) {
	queue.items[i], queue.items[j] = queue.items[j], queue.items[i]
	queue.table.nodes[queue.items[i]].indexInQueue = i
	queue.table.nodes[queue.items[j]].indexInQueue = j
}

func (queue *PriorityQueue) Push(x any) {
	id := x.(int)
	queue.table.nodes[id].indexInQueue = len(queue.items)
	queue.items = append(queue.items, id)
}

func (queue *PriorityQueue) Pop() any {
	n := len(queue.items)
	id := queue.items[n-1]
	queue.items = queue.items[:n-1]
	queue.table.nodes[id].indexInQueue = -1
	return id
}
