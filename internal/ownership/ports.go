package ownership

import "context"

// Port models keep the tree builder independent of the registry wire format.
// The companieshouse package converts provider JSON into these.

// CompanyMatch is one company search hit.
type CompanyMatch struct {
	CompanyNumber string
	Title         string
	Status        string
}

// NameElements are the structured name parts of an individual PSC.
type NameElements struct {
	Forename string
	Surname  string
}

// Identification carries the corporate identification block of a PSC record.
type Identification struct {
	RegistrationNumber string
	CountryRegistered  string
}

// ControlRecord is one raw controlling-party record as the registry reports
// it, already lifted out of the provider's JSON envelope.
type ControlRecord struct {
	Kind               string
	Name               string
	NameElements       NameElements
	CountryOfResidence string
	NaturesOfControl   []string
	// CeasedOn is non-empty when the PSC relationship has ended; such records
	// never become nodes.
	CeasedOn       string
	Identification Identification
	// SelfLink is the provider's self URI for this record, used as node ID.
	SelfLink string
}

// CompanySearcher finds candidate companies for a display name.
type CompanySearcher interface {
	Search(ctx context.Context, name string) ([]CompanyMatch, error)
}

// PartiesFetcher lists the controlling parties of a company. An empty slice
// with a nil error means the registry has no PSC data; a non-nil error means
// the fetch itself failed.
type PartiesFetcher interface {
	Parties(ctx context.Context, companyNumber string) ([]ControlRecord, error)
}
