package models

import "encoding/json"

type columnJSON struct {
	Status Status  `json:"status"`
	Title  string  `json:"title"`
	Tasks  []*Task `json:"tasks"`
}

// MarshalJSON encodes the board as its columns in display order, each with
// its tasks in order.
func (b *Board) MarshalJSON() ([]byte, error) {
	out := struct {
		Columns []columnJSON `json:"columns"`
	}{Columns: make([]columnJSON, 0, len(b.columns))}

	for _, c := range b.columns {
		out.Columns = append(out.Columns, columnJSON{
			Status: c.Status,
			Title:  c.Title,
			Tasks:  b.TasksIn(c.Status),
		})
	}
	return json.Marshal(out)
}
