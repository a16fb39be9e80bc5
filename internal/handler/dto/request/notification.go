package request

type DispatchItem struct {
	Recipient string `json:"recipient" binding:"required"`
	Message   string `json:"message" binding:"required"`
	OrderRef  string `json:"order_ref"`
}

type DispatchRequest struct {
	Items []DispatchItem `json:"items" binding:"required,min=1,dive"`
}
