package testrail

// These are the request and response bodies of the TestRail API v2 endpoints used by Client.

type addRunParams struct {
	SuiteID     int    `json:"suite_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IncludeAll  bool   `json:"include_all"`
}

type runResponse struct {
	ID int `json:"id"`
}

type addResultsForCasesParams struct {
	Results []resultParams `json:"results"`
}

type resultParams struct {
	CaseID   int    `json:"case_id"`
	StatusID int    `json:"status_id"`
	Comment  string `json:"comment"`
}
