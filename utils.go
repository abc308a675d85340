package ereader

// Statfilereader is implemented by readers that return a dataset in
// chunks of consecutive observations.
type Statfilereader interface {
	ColumnNames() []string
	RowCount() int
	Read(int) ([]*Series, error)
}
