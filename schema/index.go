package schema

import "fmt"

// Order is the sort direction of a property inside an index.
type Order uint8

// Index sort directions.
const (
	OrderNone Order = iota
	OrderAsc
	OrderDesc
)

// String returns the SQL spelling of the direction. OrderNone is empty.
func (o Order) String() string {
	switch o {
	case OrderAsc:
		return "ASC"
	case OrderDesc:
		return "DESC"
	default:
		return ""
	}
}

// Index is an ordered, directional grouping of already-declared
// properties under one optional uniqueness constraint and one optional
// name. It is owned by exactly one entity and holds weak references to
// properties the entity owns; it has no resolution passes of its own.
type Index struct {
	name       string
	unique     bool
	properties []*Property
	orders     []Order
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{}
}

// AddProperty appends a property with no explicit direction.
// Adding the same property twice panics.
func (i *Index) AddProperty(p *Property) *Index {
	return i.add(p, OrderNone)
}

// AddPropertyAsc appends a property in ascending order.
func (i *Index) AddPropertyAsc(p *Property) *Index {
	return i.add(p, OrderAsc)
}

// AddPropertyDesc appends a property in descending order.
func (i *Index) AddPropertyDesc(p *Property) *Index {
	return i.add(p, OrderDesc)
}

func (i *Index) add(p *Property, o Order) *Index {
	for _, existing := range i.properties {
		if existing == p {
			panic(fmt.Sprintf("daolite: property %q added twice to index", p.PropertyName()))
		}
	}
	i.properties = append(i.properties, p)
	i.orders = append(i.orders, o)
	return i
}

// MakeUnique marks the index as UNIQUE.
func (i *Index) MakeUnique() *Index {
	i.unique = true
	return i
}

// SetName sets an explicit index name. Empty means the renderer
// synthesizes one.
func (i *Index) SetName(name string) *Index {
	i.name = name
	return i
}

// Name returns the explicit index name, or empty if none was set.
func (i *Index) Name() string { return i.name }

// IsUnique reports if the index is UNIQUE.
func (i *Index) IsUnique() bool { return i.unique }

// Properties returns the indexed properties in declaration order.
func (i *Index) Properties() []*Property { return i.properties }

// Orders returns the sort direction of each indexed property, aligned
// with Properties.
func (i *Index) Orders() []Order { return i.orders }
