package apply_delay

// ApplyDelayRequest HTTP request model
type ApplyDelayRequest struct {
	Minutes int `json:"minutes"`
}
