package dto

// Option is a single value/label pair for a UI dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DropdownOptions groups the static option lists served to the UI.
type DropdownOptions struct {
	Gender      []Option `json:"gender"`
	Citizenship []Option `json:"citizenship"`
	Countries   []Option `json:"countries"`
	States      []Option `json:"states"`
	Professions []Option `json:"professions"`
}
