package llm

import _ "embed"

// Embeds for the coaching prompts.

//go:embed prompts/coach-system.txt
var CoachSystem string

//go:embed prompts/coach-user.txt
var CoachUser string
