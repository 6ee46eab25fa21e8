package domain

type Good struct {
	ID   int64
	Name string
}

type Offer struct {
	ID      int64
	Good    Good
	Price   Money
	Enabled bool
}

type Setting struct {
	Name  string
	Value string
}
