package handler

import (
	"strings"

	dErrors "github.com/M1rr0rb4all/pscback/pkg/domain-errors"
)

// CompanyRequest is the resolve endpoint body.
type CompanyRequest struct {
	CompanyName string `json:"company_name"`
}

// Validate rejects blank names before any registry call happens.
func (r CompanyRequest) Validate() error {
	if strings.TrimSpace(r.CompanyName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "company_name is required")
	}
	return nil
}
