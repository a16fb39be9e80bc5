package request

type SubmitDepositRequest struct {
	AmountGHS   float64 `json:"amount_ghs" binding:"required,gt=0"`
	PhoneNumber string  `json:"phone_number" binding:"required"`
	Network     string  `json:"network" binding:"required,oneof=mtn vodafone at"`
}

type SubmitOtpRequest struct {
	OtpCode string `json:"otp_code" binding:"required,len=6"`
}
