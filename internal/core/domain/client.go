package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

type ContactMethod string

const (
	ContactMethodEmail ContactMethod = "email"
	ContactMethodPhone ContactMethod = "phone"
	ContactMethodSMS   ContactMethod = "sms"
)

func (m ContactMethod) Valid() bool {
	switch m {
	case ContactMethodEmail, ContactMethodPhone, ContactMethodSMS:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodCheck PaymentMethod = "check"
	PaymentMethodCash  PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCheck, PaymentMethodCash:
		return true
	}
	return false
}

// Vehicle is the car a client brings to the garage.
type Vehicle struct {
	Make               string `json:"make"`
	Model              string `json:"model"`
	RegistrationPlate  string `json:"registrationPlate"`
	ManufactureYear    *int   `json:"manufactureYear,omitempty"`
	OdometerKm         *int   `json:"odometerKm,omitempty"`
	LastInspectionDate *Date  `json:"lastInspectionDate,omitempty"`
}

// Quote is the "devis" attached to a client.
type Quote struct {
	Number          string           `json:"number"`
	Date            *Date            `json:"date,omitempty"`
	TotalAmount     *decimal.Decimal `json:"totalAmount,omitempty"`
	WorkDescription string           `json:"workDescription"`
	Status          QuoteStatus      `json:"status"`
}

type Preferences struct {
	ContactMethod ContactMethod `json:"contactMethod"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

type Client struct {
	ID             string      `db:"id" json:"id"` // UUID
	LastName       string      `db:"last_name" json:"lastName"`
	FirstName      string      `db:"first_name" json:"firstName"`
	Email          string      `db:"email" json:"email"`
	Phone          string      `db:"phone" json:"phone"`
	PostalAddress  string      `db:"postal_address" json:"postalAddress"`
	Vehicle        Vehicle     `db:"vehicle" json:"vehicle"`         // JSON column
	Quote          Quote       `db:"quote" json:"quote"`             // JSON column
	Preferences    Preferences `db:"preferences" json:"preferences"` // JSON column
	AttachmentName string      `db:"attachment_name" json:"attachmentName,omitempty"`
	CreatedAt      time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updatedAt"`
}

// DefaultClient returns the record every create starts from. Nested objects
// are always present; enums carry their documented defaults.
func DefaultClient() Client {
	return Client{
		Quote: Quote{
			Status: QuoteStatusPending,
		},
		Preferences: Preferences{
			ContactMethod: ContactMethodEmail,
			PaymentMethod: PaymentMethodCard,
		},
	}
}

// NewClient merges the patch onto the defaults record and assigns identity.
// The result is not validated.
func NewClient(patch ClientPatch) *Client {
	client := DefaultClient()
	client.Apply(patch)

	now := time.Now().UTC()
	client.ID = uuid.New().String()
	client.CreatedAt = now
	client.UpdatedAt = now
	return &client
}

// Clone returns a deep copy so a merge can be validated without touching the
// original.
func (c *Client) Clone() *Client {
	out := *c
	out.Vehicle.ManufactureYear = clonePtr(c.Vehicle.ManufactureYear)
	out.Vehicle.OdometerKm = clonePtr(c.Vehicle.OdometerKm)
	out.Vehicle.LastInspectionDate = clonePtr(c.Vehicle.LastInspectionDate)
	out.Quote.Date = clonePtr(c.Quote.Date)
	out.Quote.TotalAmount = clonePtr(c.Quote.TotalAmount)
	return &out
}

// Validate checks the record invariants and reports every problem at once.
func (c *Client) Validate() error {
	var problems []string

	if strings.TrimSpace(c.LastName) == "" {
		problems = append(problems, "lastName is required")
	}
	if strings.TrimSpace(c.FirstName) == "" {
		problems = append(problems, "firstName is required")
	}
	if c.Vehicle.OdometerKm != nil && *c.Vehicle.OdometerKm < 0 {
		problems = append(problems, "vehicle.odometerKm must not be negative")
	}
	if c.Quote.TotalAmount != nil && c.Quote.TotalAmount.IsNegative() {
		problems = append(problems, "quote.totalAmount must not be negative")
	}
	if !c.Quote.Status.Valid() {
		problems = append(problems, "quote.status must be one of pending, accepted, rejected")
	}
	if !c.Preferences.ContactMethod.Valid() {
		problems = append(problems, "preferences.contactMethod must be one of email, phone, sms")
	}
	if !c.Preferences.PaymentMethod.Valid() {
		problems = append(problems, "preferences.paymentMethod must be one of card, check, cash")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidationError lists the rules a record breaks.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
