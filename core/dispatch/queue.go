package dispatch

import "github.com/openuam/uamd/core/model"

// requestQueue is a strict FIFO of pending trip requests.
type requestQueue struct {
	items []*model.Request
}

func (q *requestQueue) Enqueue(r *model.Request) {
	q.items = append(q.items, r)
}

// Dequeue removes and returns the oldest request, or nil when empty.
func (q *requestQueue) Dequeue() *model.Request {
	if len(q.items) == 0 {
		return nil
	}
	r := q.items[0]
	q.items = q.items[1:]
	return r
}

func (q *requestQueue) Len() int {
	return len(q.items)
}
