package checkout

import "storefront/internal/pkg/formvalidator"

// PaymentMethod is the closed set of payment options. Values are the wire names.
type PaymentMethod string

const (
	CreditCard PaymentMethod = "creditCard"
	PayPal     PaymentMethod = "paypal"
	GooglePay  PaymentMethod = "googlePay"
)

// PaymentMethods lists the options in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{CreditCard, PayPal, GooglePay}
}

func (m PaymentMethod) String() string {
	return string(m)
}

// SupportedCountries are the ISO codes offered in the country picker.
func SupportedCountries() []string {
	return []string{"US", "CA", "GB", "AU", "DE"}
}

// Form is the single record filled across all checkout steps.
// Field rules are expressed as validator tags and checked per step.
type Form struct {
	FullName     string `json:"fullName"     validate:"min=2"`
	AddressLine1 string `json:"addressLine1" validate:"min=5"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"         validate:"min=2"`
	PostalCode   string `json:"postalCode"   validate:"min=3,nospace"`
	Country      string `json:"country"      validate:"min=2,oneof=US CA GB AU DE"`
	PhoneNumber  string `json:"phoneNumber"  validate:"min=7,phone"`
	SaveAddress  bool   `json:"saveAddress"`

	PaymentMethod   PaymentMethod `json:"paymentMethod" validate:"oneof=creditCard paypal googlePay"`
	CardName        string        `json:"cardName"      validate:"required_if=PaymentMethod creditCard"`
	CardNumber      string        `json:"cardNumber"    validate:"required_if=PaymentMethod creditCard,omitempty,credit_card"`
	CardExpiry      string        `json:"cardExpiry"    validate:"required_if=PaymentMethod creditCard,omitempty,cardexpiry"`
	CardCVC         string        `json:"cardCVC"       validate:"required_if=PaymentMethod creditCard,omitempty,numeric,min=3,max=4"`
	SavePaymentInfo bool          `json:"savePaymentInfo"`

	AgreeToTerms bool `json:"agreeToTerms" validate:"required"`
}

// DeliveryAddress renders the address lines for order summaries.
func (f Form) DeliveryAddress() string {
	addr := f.AddressLine1
	if f.AddressLine2 != "" {
		addr += ", " + f.AddressLine2
	}
	return addr + ", " + f.City + " " + f.PostalCode + ", " + f.Country
}

func getFormMessages() formvalidator.Messages {
	return formvalidator.Messages{
		"FullName.min":           "Full name is required.",
		"AddressLine1.min":       "Address is required.",
		"City.min":               "City is required.",
		"PostalCode.min":         "Postal code is required.",
		"PostalCode.nospace":     "Postal code cannot contain spaces.",
		"Country.min":            "Country is required.",
		"Country.oneof":          "Please select a supported country.",
		"PhoneNumber.min":        "Phone number is required.",
		"PhoneNumber.phone":      "Invalid phone number format.",
		"PaymentMethod.oneof":    "Please select a payment method.",
		"CardName.required_if":   "Name on card is required.",
		"CardNumber.required_if": "Card number is required.",
		"CardNumber.credit_card": "Invalid card number.",
		"CardExpiry.required_if": "Expiry date is required.",
		"CardExpiry.cardexpiry":  "Expiry date must be in MM/YY format.",
		"CardCVC.required_if":    "CVC is required.",
		"CardCVC":                "Invalid CVC.",
		"AgreeToTerms.required":  "You must agree to the terms and conditions to place the order.",
	}
}
