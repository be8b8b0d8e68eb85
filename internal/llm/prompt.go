package llm

import "fmt"

// PlanRequest is what the user picked on the form.
type PlanRequest struct {
	Gym     string
	Workout string
	Notes   string
}

// BuildUserPrompt interpolates the request and the formatted history into the
// user prompt template. Inputs are used as given.
func BuildUserPrompt(req PlanRequest, history string) string {
	return fmt.Sprintf(CoachUser, req.Gym, req.Workout, req.Notes, history)
}
