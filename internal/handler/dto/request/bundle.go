package request

type SetBundleAvailabilityRequest struct {
	InStock *bool `json:"in_stock" binding:"required"`
}
