package dto

type SearchCounts struct {
	Users int `json:"users"`
	Posts int `json:"posts"`
	Tags  int `json:"tags"`
	Total int `json:"total"`
}

type SearchResults struct {
	Query       string       `json:"query"`
	IsTagSearch bool         `json:"is_tag_search"`
	Users       []UserPublic `json:"users"`
	Posts       []PostView   `json:"posts"`
	Tags        []TagView    `json:"tags"`
	Counts      SearchCounts `json:"counts"`
}

// QuickSearchResults is the typeahead variant: a fixed handful per
// category, no pagination metadata.
type QuickSearchResults struct {
	Query       string       `json:"query"`
	IsTagSearch bool         `json:"is_tag_search"`
	Users       []UserPublic `json:"users"`
	Posts       []PostView   `json:"posts"`
	Tags        []TagView    `json:"tags"`
}
