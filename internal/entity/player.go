package entity

type Player struct {
	Name     string `json:"name"`
	Mark     Mark   `json:"mark"`
	Strategy string `json:"strategy,omitempty"`
}
