package dto

import (
	"time"

	"github.com/martijn/garage/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClientRequest is the body of create and update requests. Every field is
// optional; the record store decides which ones are required.
type ClientRequest struct {
	LastName      *string             `json:"lastName"`
	FirstName     *string             `json:"firstName"`
	Email         *string             `json:"email"`
	Phone         *string             `json:"phone"`
	PostalAddress *string             `json:"postalAddress"`
	Vehicle       *VehicleRequest     `json:"vehicle"`
	Quote         *QuoteRequest       `json:"quote"`
	Preferences   *PreferencesRequest `json:"preferences"`
}

type VehicleRequest struct {
	Make               *string      `json:"make"`
	Model              *string      `json:"model"`
	RegistrationPlate  *string      `json:"registrationPlate"`
	ManufactureYear    *int         `json:"manufactureYear"`
	OdometerKm         *int         `json:"odometerKm" binding:"omitempty,gte=0"`
	LastInspectionDate *domain.Date `json:"lastInspectionDate"`
}

type QuoteRequest struct {
	Number          *string          `json:"number"`
	Date            *domain.Date     `json:"date"`
	TotalAmount     *decimal.Decimal `json:"totalAmount"`
	WorkDescription *string          `json:"workDescription"`
	Status          *string          `json:"status" binding:"omitempty,oneof=pending accepted rejected"`
}

type PreferencesRequest struct {
	ContactMethod *string `json:"contactMethod" binding:"omitempty,oneof=email phone sms"`
	PaymentMethod *string `json:"paymentMethod" binding:"omitempty,oneof=card check cash"`
}

// ClientResponse represents a client
type ClientResponse struct {
	ID             string             `json:"id"`
	LastName       string             `json:"lastName"`
	FirstName      string             `json:"firstName"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	PostalAddress  string             `json:"postalAddress"`
	Vehicle        domain.Vehicle     `json:"vehicle"`
	Quote          domain.Quote       `json:"quote"`
	Preferences    domain.Preferences `json:"preferences"`
	AttachmentName string             `json:"attachmentName,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// ToPatch converts the request into the record store's partial-update schema
func (r *ClientRequest) ToPatch() domain.ClientPatch {
	patch := domain.ClientPatch{
		LastName:      r.LastName,
		FirstName:     r.FirstName,
		Email:         r.Email,
		Phone:         r.Phone,
		PostalAddress: r.PostalAddress,
	}

	if v := r.Vehicle; v != nil {
		patch.Vehicle = &domain.VehiclePatch{
			Make:               v.Make,
			Model:              v.Model,
			RegistrationPlate:  v.RegistrationPlate,
			ManufactureYear:    v.ManufactureYear,
			OdometerKm:         v.OdometerKm,
			LastInspectionDate: v.LastInspectionDate,
		}
	}

	if q := r.Quote; q != nil {
		patch.Quote = &domain.QuotePatch{
			Number:          q.Number,
			Date:            q.Date,
			TotalAmount:     q.TotalAmount,
			WorkDescription: q.WorkDescription,
		}
		if q.Status != nil {
			status := domain.QuoteStatus(*q.Status)
			patch.Quote.Status = &status
		}
	}

	if p := r.Preferences; p != nil {
		patch.Preferences = &domain.PreferencesPatch{}
		if p.ContactMethod != nil {
			cm := domain.ContactMethod(*p.ContactMethod)
			patch.Preferences.ContactMethod = &cm
		}
		if p.PaymentMethod != nil {
			pm := domain.PaymentMethod(*p.PaymentMethod)
			patch.Preferences.PaymentMethod = &pm
		}
	}

	return patch
}
