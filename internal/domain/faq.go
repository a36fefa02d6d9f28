package domain

// FAQ is a single catalog entry. Entries are read-only once the catalog is loaded.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
