package models

// SmartKeyword maps a description substring to a category with a confidence
// score in [0, 1]. A seed set ships with the system; user-added entries
// coexist with it and are merged by id on reload.
type SmartKeyword struct {
	ID         string  `json:"id"`
	Keyword    string  `json:"keyword"`
	CategoryID string  `json:"categoryId"`
	Confidence float64 `json:"confidence"`
}
