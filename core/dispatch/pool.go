package dispatch

import "github.com/openuam/uamd/core/model"

// poolRegistry tracks multi-seat vehicles flying toward a pickup that
// may still absorb co-riders. Iteration happens in insertion order so
// first-fit pooling behaves identically across runs.
type poolRegistry struct {
	members map[*model.Vehicle]struct{}
	order   []*model.Vehicle
}

func newPoolRegistry() *poolRegistry {
	return &poolRegistry{members: make(map[*model.Vehicle]struct{})}
}

func (p *poolRegistry) Add(v *model.Vehicle) {
	if _, ok := p.members[v]; ok {
		return
	}
	p.members[v] = struct{}{}
	p.order = append(p.order, v)
}

func (p *poolRegistry) Remove(v *model.Vehicle) {
	if _, ok := p.members[v]; !ok {
		return
	}
	delete(p.members, v)
	for i, m := range p.order {
		if m == v {
			p.order = append(p.order[:i], p.order[i+1:]...)
			return
		}
	}
}

func (p *poolRegistry) Contains(v *model.Vehicle) bool {
	_, ok := p.members[v]
	return ok
}

// Vehicles returns the members in insertion order. The slice is a copy,
// so removing members mid-iteration is safe.
func (p *poolRegistry) Vehicles() []*model.Vehicle {
	return append([]*model.Vehicle(nil), p.order...)
}

func (p *poolRegistry) Len() int {
	return len(p.order)
}
