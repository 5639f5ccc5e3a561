package manage_recurring

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // active | paused | cancelled
}
