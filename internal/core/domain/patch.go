package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientPatch is a partial client record. A nil field keeps the stored
// value; a non-nil field replaces it. Nested patches merge key by key.
type ClientPatch struct {
	LastName      *string
	FirstName     *string
	Email         *string
	Phone         *string
	PostalAddress *string
	Vehicle       *VehiclePatch
	Quote         *QuotePatch
	Preferences   *PreferencesPatch
}

type VehiclePatch struct {
	Make               *string
	Model              *string
	RegistrationPlate  *string
	ManufactureYear    *int
	OdometerKm         *int
	LastInspectionDate *Date
}

type QuotePatch struct {
	Number          *string
	Date            *Date
	TotalAmount     *decimal.Decimal
	WorkDescription *string
	Status          *QuoteStatus
}

type PreferencesPatch struct {
	ContactMethod *ContactMethod
	PaymentMethod *PaymentMethod
}

// Apply merges the patch into the client. ID, CreatedAt and AttachmentName
// are never touched.
func (c *Client) Apply(p ClientPatch) {
	set(&c.LastName, p.LastName)
	set(&c.FirstName, p.FirstName)
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.PostalAddress, p.PostalAddress)

	if p.Vehicle != nil {
		c.Vehicle.apply(*p.Vehicle)
	}
	if p.Quote != nil {
		c.Quote.apply(*p.Quote)
	}
	if p.Preferences != nil {
		c.Preferences.apply(*p.Preferences)
	}
}

// Touch records a modification.
func (c *Client) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

func (v *Vehicle) apply(p VehiclePatch) {
	set(&v.Make, p.Make)
	set(&v.Model, p.Model)
	set(&v.RegistrationPlate, p.RegistrationPlate)
	setPtr(&v.ManufactureYear, p.ManufactureYear)
	setPtr(&v.OdometerKm, p.OdometerKm)
	setPtr(&v.LastInspectionDate, p.LastInspectionDate)
}

func (q *Quote) apply(p QuotePatch) {
	set(&q.Number, p.Number)
	setPtr(&q.Date, p.Date)
	setPtr(&q.TotalAmount, p.TotalAmount)
	set(&q.WorkDescription, p.WorkDescription)
	set(&q.Status, p.Status)
}

func (pr *Preferences) apply(p PreferencesPatch) {
	set(&pr.ContactMethod, p.ContactMethod)
	set(&pr.PaymentMethod, p.PaymentMethod)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setPtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = clonePtr(src)
	}
}
