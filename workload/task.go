package workload

// A Task is the sending or receiving end of one flow.
type Task struct {
	id   int
	flow int
	vm   int
}

// ID returns the ID of the task.
func (t *Task) ID() int {
	return t.id
}

// Flow returns the index of the flow in the played trace.
func (t *Task) Flow() int {
	return t.flow
}

// VM returns the ID of the VM that runs the task.
func (t *Task) VM() int {
	return t.vm
}
