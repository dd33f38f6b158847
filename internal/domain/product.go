package domain

type Category string

const (
	CategoryMain      Category = "MAIN"
	CategoryAppetizer Category = "APPETIZER"
	CategoryDrink     Category = "DRINK"
)

// Product is a catalog entry. Price is in the smallest currency unit;
// money never touches floating point anywhere in this package.
type Product struct {
	ID       int64
	Name     string
	Price    int64
	Category Category
	Stock    int
	ImageURL string
	IsActive bool
}
