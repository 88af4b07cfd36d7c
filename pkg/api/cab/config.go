package cab

// Config describes one catalog scrape: where the API lives, which terms to
// pull, and where the supporting registries and the cache live. It is loaded
// from a yaml file, see pkg/fetch.LoadConfig.
type Config struct {
	// APIURL is the base URL of the catalog API, without the query string.
	APIURL string `json:"api-url,omitempty"`
	// Terms lists the term identifiers (srcdb values) to scrape.
	Terms []string `json:"terms"`
	// Subjects is the path of the subject registry file.
	Subjects string `json:"subjects,omitempty"`
	// Equivalents is the path of the course equivalence file. Each line is a
	// prerequisite sentence whose qualifications are interchangeable.
	Equivalents string `json:"equivalents,omitempty"`
	// CacheDir overrides the default cache location.
	CacheDir string `json:"cache-dir,omitempty"`
}
