package model

// TaskType tags one element of a vehicle schedule.
type TaskType int

const (
	TaskStay TaskType = iota
	TaskFly
	TaskPickup
	TaskDropoff
)

func (t TaskType) String() string {
	switch t {
	case TaskStay:
		return "STAY"
	case TaskFly:
		return "FLY"
	case TaskPickup:
		return "PICKUP"
	case TaskDropoff:
		return "DROPOFF"
	default:
		return "UNKNOWN"
	}
}

// Task is one element of a vehicle schedule. Location is the STAY
// position, or the pickup/dropoff point for the passenger tasks.
// Requests is populated for PICKUP and DROPOFF tasks only.
type Task struct {
	Type     TaskType
	Location Coord
	End      float64 // simulation time the task completes
	Requests []*Request
}

// Schedule is the ordered task list of a vehicle. The scheduling system
// owns it; the dispatcher only reads it and appends pooled requests to
// PICKUP/DROPOFF request lists.
type Schedule struct {
	Tasks   []*Task
	current int
}

// NewSchedule builds a schedule starting at its first task.
func NewSchedule(tasks ...*Task) *Schedule {
	return &Schedule{Tasks: tasks}
}

// CurrentTask returns the task being executed, or nil once the schedule
// is exhausted.
func (s *Schedule) CurrentTask() *Task {
	if s.current >= len(s.Tasks) {
		return nil
	}
	return s.Tasks[s.current]
}

// CurrentIndex returns the position of the current task.
func (s *Schedule) CurrentIndex() int {
	return s.current
}

// TaskAt returns the i-th task, or nil when out of bounds.
func (s *Schedule) TaskAt(i int) *Task {
	if i < 0 || i >= len(s.Tasks) {
		return nil
	}
	return s.Tasks[i]
}

// Advance moves to the next task and returns it, or nil at the end.
func (s *Schedule) Advance() *Task {
	if s.current < len(s.Tasks) {
		s.current++
	}
	return s.CurrentTask()
}

// Done reports whether every task has completed.
func (s *Schedule) Done() bool {
	return s.current >= len(s.Tasks)
}
