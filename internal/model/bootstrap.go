package model

import "time"

// Plan is the subscription plan offered when billing is enabled.
type Plan struct {
	Price         int64 `json:"price"`
	FreeTrialDays int   `json:"freeTrialDays"`
}

// BootstrapState is the application configuration served by the API before login.
type BootstrapState struct {
	BuildTime            *time.Time `json:"buildTime,omitempty"`
	InitialPlan          *Plan      `json:"initialPlan,omitempty"`
	APIURL               string     `json:"apiUrl,omitempty"`
	ReCAPTCHAKey         string     `json:"ReCAPTCHAKey,omitempty"`
	StripePublicKey      string     `json:"stripePublicKey,omitempty"`
	Release              string     `json:"release,omitempty"`
	Revision             string     `json:"revision,omitempty"`
	BuildType            string     `json:"buildType,omitempty"`
	IsReady              bool       `json:"-"`
	IsBootstrapping      bool       `json:"-"`
	VerifyLogin          bool       `json:"verifyLogin"`
	VerifyRegister       bool       `json:"verifyRegister"`
	VerifyForgotPassword bool       `json:"verifyForgotPassword"`
	RequireLegalName     bool       `json:"requireLegalName"`
	RequirePhoneNumber   bool       `json:"requirePhoneNumber"`
	RequireBetaCode      bool       `json:"requireBetaCode"`
	AllowSignUp          bool       `json:"allowSignUp"`
	AllowForgotPassword  bool       `json:"allowForgotPassword"`
	BillingEnabled       bool       `json:"billingEnabled"`
	LongPollPlaidSetup   bool       `json:"longPollPlaidSetup"`
}

// AuthenticationState describes the current session.
type AuthenticationState struct {
	User            *User
	Token           string
	IsAuthenticated bool
}
