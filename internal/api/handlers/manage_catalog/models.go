package manage_catalog

// SetActiveRequest включение или отключение мастера
type SetActiveRequest struct {
	Active *bool `json:"active"`
}
