// Package ownership resolves the beneficial-ownership structure of a company
// by recursively following persons-with-significant-control relationships
// until terminal owners are reached.
package ownership

// EntityType classifies a controlling party.
type EntityType string

const (
	EntityIndividual   EntityType = "individual"
	EntityUKCompany    EntityType = "uk_company"
	EntityNonUKCompany EntityType = "non_uk_company"
)

// Node is one entry in the ownership tree. Each node is exclusively owned by
// its parent; the builder never mutates a node after appending it to its
// parent's children, except to attach error/children from a completed
// recursive expansion.
type Node struct {
	// ID is the provider-assigned self link for PSC entries, or the company
	// number for company nodes. Unique only as far as the provider guarantees.
	ID   string
	Name string
	Type EntityType
	// CompanyNumber is set only for uk_company nodes where a registration
	// number was discoverable. For the root it equals the number the tree was
	// built from.
	CompanyNumber      string
	CountryOfResidence string
	// NatureOfControl preserves the provider's order; may be empty.
	NatureOfControl []string
	// Children preserves the order returned by the controlling-parties fetch.
	// Only uk_company nodes with a resolved company number ever have children.
	Children []*Node
	IsActive bool
	// Err is set when expansion of this node's children failed or a cycle was
	// detected at this node. A node can carry both children and an error after
	// a partial failure.
	Err string
}

// Result is what Resolve hands back to the transport layer.
type Result struct {
	Root           *Node
	TotalNodes     int
	ProcessingTime float64 // seconds of wall clock, search through count
	Errors         []string
}
