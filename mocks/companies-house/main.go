// Mock Companies House API for local development. Serves deterministic search
// and PSC fixtures, including a two-company ownership cycle so the gateway's
// cycle handling can be exercised without live data.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

var searchFixture = map[string]any{
	"items": []map[string]any{
		{"company_number": "00012345", "title": "ACME HOLDINGS LIMITED", "company_status": "active"},
		{"company_number": "00099999", "title": "ACME HOLDINGS (DISSOLVED)", "company_status": "dissolved"},
	},
}

// pscFixtures keys are company numbers. 00054321 and 00067890 own each other.
var pscFixtures = map[string]any{
	"00012345": map[string]any{
		"items": []map[string]any{
			{
				"kind":                 "individual-person-with-significant-control",
				"name_elements":        map[string]string{"forename": "Jane", "surname": "Doe"},
				"country_of_residence": "England",
				"natures_of_control":   []string{"ownership-of-shares-25-to-50-percent"},
				"links":                map[string]string{"self": "/company/00012345/persons-with-significant-control/individual/1"},
			},
			{
				"kind":               "corporate-entity-person-with-significant-control",
				"name":               "ACME PARENT LIMITED",
				"natures_of_control": []string{"ownership-of-shares-75-to-100-percent"},
				"identification":     map[string]string{"registration_number": "00054321", "country_registered": "United Kingdom"},
				"links":              map[string]string{"self": "/company/00012345/persons-with-significant-control/corporate-entity/2"},
			},
			{
				"kind":      "individual-person-with-significant-control",
				"name":      "Former Owner",
				"ceased_on": "2020-01-01",
				"links":     map[string]string{"self": "/company/00012345/persons-with-significant-control/individual/3"},
			},
		},
	},
	"00054321": map[string]any{
		"items": []map[string]any{
			{
				"kind":               "corporate-entity-person-with-significant-control",
				"name":               "ACME CIRCULAR LIMITED",
				"natures_of_control": []string{"voting-rights-75-to-100-percent"},
				"identification":     map[string]string{"registration_number": "00067890", "country_registered": "Scotland"},
				"links":              map[string]string{"self": "/company/00054321/persons-with-significant-control/corporate-entity/1"},
			},
		},
	},
	"00067890": map[string]any{
		"items": []map[string]any{
			{
				"kind":               "corporate-entity-person-with-significant-control",
				"name":               "ACME PARENT LIMITED",
				"natures_of_control": []string{"voting-rights-75-to-100-percent"},
				"identification":     map[string]string{"registration_number": "00054321", "country_registered": "United Kingdom"},
				"links":              map[string]string{"self": "/company/00067890/persons-with-significant-control/corporate-entity/1"},
			},
		},
	},
}

func main() {
	mux := http.NewServeMux()

	mux.HandleFunc("/search/companies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, searchFixture)
	})

	mux.HandleFunc("/company/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[2] != "persons-with-significant-control" {
			http.NotFound(w, r)
			return
		}
		fixture, ok := pscFixtures[parts[1]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, fixture)
	})

	log.Println("mock companies house listening on :9090")
	log.Fatal(http.ListenAndServe(":9090", mux))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
