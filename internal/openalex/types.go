package openalex

// Work represents a work from the OpenAlex API, limited to the fields
// needed for reference verification.
type Work struct {
	ID              string       `json:"id"`
	DOI             string       `json:"doi,omitempty"` // Full URL form: https://doi.org/...
	Title           string       `json:"title,omitempty"`
	DisplayName     string       `json:"display_name,omitempty"`
	PublicationYear int          `json:"publication_year,omitempty"`
	Authorships     []Authorship `json:"authorships,omitempty"`
	PrimaryLocation *Location    `json:"primary_location,omitempty"`
	IDs             WorkIDs      `json:"ids,omitempty"`
}

// Authorship links a work to one author.
type Authorship struct {
	Author DehydratedAuthor `json:"author"`
}

// DehydratedAuthor is the compact author representation in work records.
type DehydratedAuthor struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
}

// Location describes where a work is hosted.
type Location struct {
	LandingPageURL string  `json:"landing_page_url,omitempty"`
	Source         *Source `json:"source,omitempty"`
}

// Source is the venue a location belongs to.
type Source struct {
	DisplayName string `json:"display_name,omitempty"`
}

// WorkIDs holds external identifiers of a work.
type WorkIDs struct {
	OpenAlex string `json:"openalex,omitempty"`
	DOI      string `json:"doi,omitempty"`
	PMID     string `json:"pmid,omitempty"`
}

// worksResponse is the paginated list response from /works.
type worksResponse struct {
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
	Results []Work `json:"results"`
}
