package response

import (
	"time"

	"bundlemart-api/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type DepositResponse struct {
	Reference        string    `json:"reference"`
	State            string    `json:"state"`
	AmountGHS        float64   `json:"amountGhs"`
	SettledAmountGHS *float64  `json:"settledAmountGhs,omitempty"`
	PhoneNumber      string    `json:"phoneNumber"`
	Network          string    `json:"network"`
	FailureReason    *string   `json:"failureReason,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type SubmitDepositResponse struct {
	Deposit     DepositResponse `json:"deposit"`
	RequiresOtp bool            `json:"requiresOtp"`
	Message     string          `json:"message,omitempty"`
}

func FromDepositView(view queries.DepositView) DepositResponse {
	var resp DepositResponse
	_ = copier.Copy(&resp, &view)
	return resp
}

func FromDepositViews(views []queries.DepositView) []DepositResponse {
	out := make([]DepositResponse, len(views))
	for i, v := range views {
		out[i] = FromDepositView(v)
	}
	return out
}
