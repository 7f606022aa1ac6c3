package dock

import (
	"container/heap"
	"fmt"
)

//ScoreIndex pairs a score with the position it had in the flat input.
type ScoreIndex struct {
	Index int
	Score float64
}

//scoreHeap is a bounded max-heap over (score, index): the root is the
//entry to evict next, the worst score, and among equal scores the
//latest index, so the earliest ones survive.
type scoreHeap []ScoreIndex

func (h scoreHeap) Len() int { return len(h) }

func (h scoreHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score > h[j].Score
	}
	return h[i].Index > h[j].Index
}

func (h scoreHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *scoreHeap) Push(x any) { *h = append(*h, x.(ScoreIndex)) }

func (h *scoreHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

//TopN returns the n smallest of the scores paired with the indices they
//had, sorted by score and, among equal scores, by index, both
//ascending; the selection is the first n entries of that same ordering
//over the whole input. Only n entries are ever held, so the best
//handful of a whole orientation batch comes out in O(len log n) without
//sorting the batch.
func TopN(scores []float64, n int) ([]ScoreIndex, error) {
	if n < 1 || n > len(scores) {
		return nil, Error{message: fmt.Sprintf("crimm/dock: can't take the best %d of %d scores", n, len(scores)), critical: true}
	}
	h := make(scoreHeap, n)
	for i := range h {
		h[i] = ScoreIndex{Index: i, Score: scores[i]}
	}
	heap.Init(&h)
	for i := n; i < len(scores); i++ {
		//a candidate tying the root doesn't replace it: the incumbent
		//has the lower index
		if scores[i] < h[0].Score {
			h[0] = ScoreIndex{Index: i, Score: scores[i]}
			heap.Fix(&h, 0)
		}
	}
	out := make([]ScoreIndex, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(ScoreIndex)
	}
	return out, nil
}
