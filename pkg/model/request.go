package model

// Pagination describes the page window a fetch request targets. The
// façade currently fixes PageSize to a very large constant and always
// requests PageIndex 0 (§9's open question on server-side pagination).
type Pagination struct {
	PageIndex int
	PageSize  int
}

// FetchRequest is the argument to DataSource.Fetch (§6).
type FetchRequest struct {
	Pagination Pagination
	Sort       SortModel
	Filter     FilterModel
}

// FetchResponse is the result of DataSource.Fetch (§6).
type FetchResponse struct {
	Rows      []Row
	TotalRows int
}
