package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page selects a window of a listing. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

func (p Page) IsValid() bool {
	return p.Number >= 1 && p.Size >= 1 && p.Size <= MaxPageSize
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
