package response

type DispatchResponse struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}
