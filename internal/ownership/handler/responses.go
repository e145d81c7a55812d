package handler

import "github.com/M1rr0rb4all/pscback/internal/ownership"

// OwnershipResponse is the wire shape of a completed resolution.
type OwnershipResponse struct {
	RootCompany    NodeResponse `json:"root_company"`
	TotalNodes     int          `json:"total_nodes"`
	ProcessingTime float64      `json:"processing_time"`
	Errors         []string     `json:"errors"`
}

// NodeResponse mirrors ownership.Node for JSON output. nature_of_control and
// children always serialize as arrays, never null.
type NodeResponse struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Type               string         `json:"type"`
	CompanyNumber      string         `json:"company_number,omitempty"`
	CountryOfResidence string         `json:"country_of_residence,omitempty"`
	NatureOfControl    []string       `json:"nature_of_control"`
	Children           []NodeResponse `json:"children"`
	IsActive           bool           `json:"is_active"`
	Error              string         `json:"error,omitempty"`
}

// FromResult converts a service result into the response shape.
func FromResult(result *ownership.Result) OwnershipResponse {
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	return OwnershipResponse{
		RootCompany:    fromNode(result.Root),
		TotalNodes:     result.TotalNodes,
		ProcessingTime: result.ProcessingTime,
		Errors:         errs,
	}
}

func fromNode(node *ownership.Node) NodeResponse {
	out := NodeResponse{
		ID:                 node.ID,
		Name:               node.Name,
		Type:               string(node.Type),
		CompanyNumber:      node.CompanyNumber,
		CountryOfResidence: node.CountryOfResidence,
		NatureOfControl:    []string{},
		Children:           []NodeResponse{},
		IsActive:           node.IsActive,
		Error:              node.Err,
	}
	out.NatureOfControl = append(out.NatureOfControl, node.NatureOfControl...)
	for _, child := range node.Children {
		out.Children = append(out.Children, fromNode(child))
	}
	return out
}
