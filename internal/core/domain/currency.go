package domain

// Currency is one entry of the catalog backing the conversion selectors.
type Currency struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Catalog maps currency code to its entry. Fetched once per modal-open
// session and cached in view state until the surrounding session ends.
type Catalog map[string]Currency
