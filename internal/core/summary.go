package core

// CategoryTotal is an aggregate over a (category, subcategory) pair.
type CategoryTotal struct {
	Category    string
	Subcategory string
	Total       Money
	Count       int
}

// SumEntries adds up the amounts of a slice of entries.
func SumEntries(entries []Entry) Money {
	var cents int64
	for _, e := range entries {
		cents += e.Amount.Cents
	}
	return Money{Cents: cents}
}
