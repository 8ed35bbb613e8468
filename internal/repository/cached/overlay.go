package cached

import (
	"sync"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
)

// MarkHandle identifies one optimistic mark.
type MarkHandle struct {
	key attendance.Key
	id  uint64
}

// patch is an optimistic status laid over fetched data. prev is the patch
// it replaced, restored if this one is rolled back.
type patch struct {
	id     uint64
	status attendance.Status
	prev   *patch
	// gen is the status-query generation that will contain the mark; zero
	// until upstream accepted it.
	gen uint64
}

type overlay struct {
	mu      sync.Mutex
	patches map[attendance.Key]*patch
	seq     uint64
}

func newOverlay() *overlay {
	return &overlay{patches: make(map[attendance.Key]*patch)}
}

func (o *overlay) push(key attendance.Key, status attendance.Status) MarkHandle {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.seq++
	o.patches[key] = &patch{id: o.seq, status: status, prev: o.patches[key]}
	return MarkHandle{key: key, id: o.seq}
}

// rollback removes the patch of h, restoring whatever it replaced.
func (o *overlay) rollback(h MarkHandle) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var newer *patch
	for p := o.patches[h.key]; p != nil; newer, p = p, p.prev {
		if p.id != h.id {
			continue
		}
		switch {
		case newer != nil:
			newer.prev = p.prev
		case p.prev != nil:
			o.patches[h.key] = p.prev
		default:
			delete(o.patches, h.key)
		}
		return
	}
}

func (o *overlay) confirm(h MarkHandle, gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for p := o.patches[h.key]; p != nil; p = p.prev {
		if p.id == h.id {
			p.gen = gen
			return
		}
	}
}

// apply lays the patches of date over statuses and returns the employees
// shown with a pending status. A confirmed patch is dropped once data of
// its generation or newer has been fetched.
func (o *overlay) apply(date string, fetchedGen uint64, statuses map[string]attendance.Status) map[string]bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	pending := make(map[string]bool)
	for key, p := range o.patches {
		if key.Date != date {
			continue
		}
		if p.gen != 0 && fetchedGen >= p.gen {
			delete(o.patches, key)
			continue
		}
		statuses[key.EmployeeID] = p.status
		pending[key.EmployeeID] = true
	}
	return pending
}

func (o *overlay) forget(employeeID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for key := range o.patches {
		if key.EmployeeID == employeeID {
			delete(o.patches, key)
		}
	}
}

// BeginMark shows status for (employeeID, date) before upstream confirms it.
func (r *Repository) BeginMark(employeeID, date string, status attendance.Status) MarkHandle {
	return r.overlay.push(attendance.Key{EmployeeID: employeeID, Date: date}, status)
}

// RollbackMark undoes a rejected optimistic mark.
func (r *Repository) RollbackMark(h MarkHandle) {
	r.overlay.rollback(h)
}

// ConfirmMark keeps the optimistic mark until a fetch of generation gen
// lands. Only today's board is refetched, so a confirmed mark of another
// date is dropped at once.
func (r *Repository) ConfirmMark(h MarkHandle, gen uint64) {
	if h.key.Date != r.Today() || gen == 0 {
		r.overlay.rollback(h)
		return
	}
	r.overlay.confirm(h, gen)
}
