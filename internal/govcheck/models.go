// internal/govcheck/models.go
package govcheck

// Record is the JSON document stored per plate by the registry loader.
type Record struct {
	Safety       int    `json:"safety"`
	TestValidity string `json:"test_validity"` // YYYY-MM-DD
	Stolen       bool   `json:"stolen"`
}

type Status string

const (
	StatusValid       Status = "VALID"
	StatusTestExpired Status = "TEST_EXPIRED"
	StatusStolen      Status = "STOLEN"
)

type Output struct {
	Plate        string `json:"plate"`
	SafetyGrade  int    `json:"safetyGrade"`
	TestValidity string `json:"testValidity"`
	Stolen       bool   `json:"stolen"`
	Status       Status `json:"status"`
}
