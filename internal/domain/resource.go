package domain

// Resource names an entity for messages and routing.
type Resource struct {
	Name       string // "Author"
	Collection string // "authors"
}

var (
	AuthorResource   = Resource{Name: "Author", Collection: "authors"}
	BookResource     = Resource{Name: "Book", Collection: "books"}
	CustomerResource = Resource{Name: "Customer", Collection: "customers"}
	OrderResource    = Resource{Name: "Order", Collection: "orders"}
)
