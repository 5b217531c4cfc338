package constants

// API route constants
const (
	APIGroup   = "/api"
	UserGroup  = "/user"
	ImageGroup = "/image"

	RegisterRoute      = "/register"
	LoginRoute         = "/login"
	CreditsRoute       = "/credits"
	PayRazorpayRoute   = "/pay-razor"
	VerifyRazorRoute   = "/verify-razor"
	PayStripeRoute     = "/pay-stripe"
	VerifyStripeRoute  = "/verify-stripe"
	GenerateImageRoute = "/generate-image"
	StatsRoute         = "/stats"
)
