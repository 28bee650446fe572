package team

import "fmt"

// Team is one program in the dynasty league. TakenBy / TakenByName are both
// empty (AI team) or both set (human-controlled team).
type Team struct {
	ID          int64
	Name        string
	Conference  string
	Stars       float64
	TakenBy     string
	TakenByName string
}

// Taken reports whether a human currently controls the team.
func (t Team) Taken() bool {
	return t.TakenBy != ""
}

// ConferenceLabel returns the conference, falling back to "Independent" for
// teams without one.
func (t Team) ConferenceLabel() string {
	if t.Conference == "" {
		return "Independent"
	}
	return t.Conference
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if (t.TakenBy == "") != (t.TakenByName == "") {
		return fmt.Errorf("taken_by and taken_by_name must be set together")
	}

	return nil
}
