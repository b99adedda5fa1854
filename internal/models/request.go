// internal/models/request.go
package models

// RecommendationRequest is the decoded body of a recommendation call.
// ExperienceLevel is carried for logging only.
type RecommendationRequest struct {
	Budget          float64 `json:"budget"`
	DrivingStyle    string  `json:"drivingStyle"`
	ExperienceLevel string  `json:"experienceLevel"`
}
