package orm

// Model is embedded in every row type. It carries the row identity; ID 0
// means the row has not been saved.
type Model struct {
	ID int64 `json:"id"`
}

// PrimaryKey returns the address of the identity slot.
func (m *Model) PrimaryKey() *int64 { return &m.ID }

// identified is implemented by *T for any T embedding Model.
type identified interface {
	PrimaryKey() *int64
}
