package authgateway

// Config holds the gateway-level settings shared by all flows.
type Config struct {
	// FrontendURL is the base URL of the frontend application that redirect
	// responses point at, without a trailing slash.
	FrontendURL string `env:"FRONTEND_URL,required"`
}
