package companieshouse

import "github.com/M1rr0rb4all/pscback/internal/ownership"

// Wire models decode the Companies House JSON payloads. Only the fields the
// gateway consumes are declared; the provider sends much more.

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	CompanyNumber string `json:"company_number"`
	Title         string `json:"title"`
	CompanyStatus string `json:"company_status"`
}

type pscListResponse struct {
	Items []pscItem `json:"items"`
}

type pscItem struct {
	Kind               string            `json:"kind"`
	Name               string            `json:"name"`
	NameElements       pscNameElements   `json:"name_elements"`
	CountryOfResidence string            `json:"country_of_residence"`
	NaturesOfControl   []string          `json:"natures_of_control"`
	CeasedOn           string            `json:"ceased_on"`
	Identification     pscIdentification `json:"identification"`
	Links              pscLinks          `json:"links"`
}

type pscNameElements struct {
	Forename string `json:"forename"`
	Surname  string `json:"surname"`
}

type pscIdentification struct {
	RegistrationNumber string `json:"registration_number"`
	CountryRegistered  string `json:"country_registered"`
}

type pscLinks struct {
	Self string `json:"self"`
}

// Converters lift wire models into the port models the core consumes, so the
// tree builder never sees provider JSON.

func toCompanyMatch(item searchItem) ownership.CompanyMatch {
	return ownership.CompanyMatch{
		CompanyNumber: item.CompanyNumber,
		Title:         item.Title,
		Status:        item.CompanyStatus,
	}
}

func toControlRecord(item pscItem) ownership.ControlRecord {
	return ownership.ControlRecord{
		Kind: item.Kind,
		Name: item.Name,
		NameElements: ownership.NameElements{
			Forename: item.NameElements.Forename,
			Surname:  item.NameElements.Surname,
		},
		CountryOfResidence: item.CountryOfResidence,
		NaturesOfControl:   item.NaturesOfControl,
		CeasedOn:           item.CeasedOn,
		Identification: ownership.Identification{
			RegistrationNumber: item.Identification.RegistrationNumber,
			CountryRegistered:  item.Identification.CountryRegistered,
		},
		SelfLink: item.Links.Self,
	}
}
