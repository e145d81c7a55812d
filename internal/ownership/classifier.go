package ownership

import "strings"

// Companies House PSC kind tags. The matcher below enumerates the closed set
// the register publishes rather than probing kind strings for substrings, so
// classification stays exhaustive and testable.
const (
	KindIndividualPSC      = "individual-person-with-significant-control"
	KindCorporateEntityPSC = "corporate-entity-person-with-significant-control"
	KindLegalPersonPSC     = "legal-person-person-with-significant-control"
	KindSuperSecurePSC     = "super-secure-person-with-significant-control"
	KindIndividualBO       = "individual-beneficial-owner"
	KindCorporateEntityBO  = "corporate-entity-beneficial-owner"
	KindLegalPersonBO      = "legal-person-beneficial-owner"
	KindSuperSecureBO      = "super-secure-beneficial-owner"
)

type kindClass int

const (
	classIndividual kindClass = iota
	classCorporate
)

var kindClasses = map[string]kindClass{
	KindIndividualPSC:      classIndividual,
	KindCorporateEntityPSC: classCorporate,
	KindLegalPersonPSC:     classCorporate,
	KindSuperSecurePSC:     classIndividual,
	KindIndividualBO:       classIndividual,
	KindCorporateEntityBO:  classCorporate,
	KindLegalPersonBO:      classCorporate,
	KindSuperSecureBO:      classIndividual,
}

// ukCountries are the register spellings that mark a corporate PSC as a UK
// company. Matching is case-insensitive.
var ukCountries = map[string]struct{}{
	"england":          {},
	"wales":            {},
	"scotland":         {},
	"northern ireland": {},
	"united kingdom":   {},
	"uk":               {},
}

// Classify maps a raw controlling-party record to an entity type. Pure and
// deterministic: same record, same answer.
//
// Unrecognized kinds classify as individual: the register adds kinds over
// time, and an unknown kind must degrade to a leaf rather than trigger a
// bogus recursive company expansion.
func Classify(record ControlRecord) EntityType {
	if kindClasses[record.Kind] == classIndividual {
		return EntityIndividual
	}

	country := record.CountryOfResidence
	if country == "" {
		country = record.Identification.CountryRegistered
	}
	if _, ok := ukCountries[strings.ToLower(strings.TrimSpace(country))]; ok {
		return EntityUKCompany
	}
	return EntityNonUKCompany
}
