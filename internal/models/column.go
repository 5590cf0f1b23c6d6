package models

// Column is a workflow stage and its ordered list of task references.
// The column identifier is its status value.
type Column struct {
	Status  Status   `json:"status"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"task_ids"`
}

// ID returns the column identifier
func (c *Column) ID() string {
	return string(c.Status)
}

// IndexOf returns the position of taskID in the column, or -1
func (c *Column) IndexOf(taskID string) int {
	for i, id := range c.TaskIDs {
		if id == taskID {
			return i
		}
	}
	return -1
}

// Len returns the number of tasks in the column
func (c *Column) Len() int {
	return len(c.TaskIDs)
}
