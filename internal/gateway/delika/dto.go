package delika

import (
	"encoding/json"
	"time"

	"github.com/Krontiva/rider-web-app/internal/domain"
)

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

type verifyOTPRequest struct {
	OTP     int    `json:"OTP"`
	Contact string `json:"contact"`
}

type verifyOTPResponse struct {
	OTPValidate bool `json:"otpValidate"`
}

type verifyCompletionRequest struct {
	OrderOTP string `json:"orderOTP"`
}

type userDTO struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User(d)
}

type pickupDTO struct {
	FromAddress   string  `json:"fromAddress"`
	FromLatitude  float64 `json:"fromLatitude,omitempty"`
	FromLongitude float64 `json:"fromLongitude,omitempty"`
}

type dropOffDTO struct {
	ToAddress string `json:"toAddress"`
}

type orderDTO struct {
	ID                 string       `json:"id"`
	CustomerName       string       `json:"customerName"`
	OrderNumber        json.Number  `json:"orderNumber"`
	OrderStatus        string       `json:"orderStatus"`
	Pickup             []pickupDTO  `json:"pickup"`
	DropOff            []dropOffDTO `json:"dropOff"`
	DeliveryPrice      float64      `json:"deliveryPrice"`
	BatchID            string       `json:"batchID,omitempty"`
	CourierName        string       `json:"courierName"`
	CustomerPhone      string       `json:"customerPhoneNumber"`
	OrderReceivedTime  string       `json:"orderReceivedTime,omitempty"`
	OrderPickedupTime  string       `json:"orderPickedupTime,omitempty"`
	OrderOnmywayTime   string       `json:"orderOnmywayTime,omitempty"`
	OrderCompletedTime string       `json:"orderCompletedTime,omitempty"`
}

func (d orderDTO) toDomain() domain.Order {
	pickup := make([]domain.PickupPoint, 0, len(d.Pickup))
	for _, p := range d.Pickup {
		pickup = append(pickup, domain.PickupPoint{
			Address:   p.FromAddress,
			Latitude:  p.FromLatitude,
			Longitude: p.FromLongitude,
		})
	}
	dropOff := make([]domain.DropOffPoint, 0, len(d.DropOff))
	for _, p := range d.DropOff {
		dropOff = append(dropOff, domain.DropOffPoint{Address: p.ToAddress})
	}
	return domain.Order{
		ID:            d.ID,
		CustomerName:  d.CustomerName,
		OrderNumber:   d.OrderNumber.String(),
		Status:        domain.OrderStatus(d.OrderStatus),
		Pickup:        pickup,
		DropOff:       dropOff,
		DeliveryPrice: d.DeliveryPrice,
		BatchID:       d.BatchID,
		CourierName:   d.CourierName,
		CustomerPhone: d.CustomerPhone,
		ReceivedAt:    parseTime(d.OrderReceivedTime),
		PickedUpAt:    parseTime(d.OrderPickedupTime),
		OnMyWayAt:     parseTime(d.OrderOnmywayTime),
		CompletedAt:   parseTime(d.OrderCompletedTime),
	}
}

// parseTime tolerates absent or malformed timestamps: they become the zero
// time rather than failing the whole fetch.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type statusPatchDTO struct {
	OrderStatus        string `json:"orderStatus"`
	OrderPickedupTime  string `json:"orderPickedupTime,omitempty"`
	OrderOnmywayTime   string `json:"orderOnmywayTime,omitempty"`
	OrderCompletedTime string `json:"orderCompletedTime,omitempty"`
}

func toStatusPatchDTO(p domain.StatusPatch) statusPatchDTO {
	return statusPatchDTO{
		OrderStatus:        string(p.Status),
		OrderPickedupTime:  formatTime(p.PickedUpAt),
		OrderOnmywayTime:   formatTime(p.OnMyWayAt),
		OrderCompletedTime: formatTime(p.CompletedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

type priceEntryDTO struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	AmountInWords string   `json:"amountInWords"`
	Distance      *float64 `json:"distance,omitempty"`
}

type priceSubmissionDTO struct {
	ID        string          `json:"id"`
	CreatedAt int64           `json:"created_at"`
	UserID    string          `json:"delika_user_table_id"`
	Prices    []priceEntryDTO `json:"prices"`
}

func (d priceSubmissionDTO) toDomain() domain.PriceSubmission {
	prices := make([]domain.PriceEntry, 0, len(d.Prices))
	for _, p := range d.Prices {
		prices = append(prices, domain.PriceEntry{
			Name:          p.Name,
			Price:         p.Price,
			Currency:      p.Currency,
			AmountInWords: p.AmountInWords,
			DistanceKm:    p.Distance,
		})
	}
	return domain.PriceSubmission{
		ID:        d.ID,
		CreatedAt: time.UnixMilli(d.CreatedAt),
		UserID:    d.UserID,
		Prices:    prices,
	}
}

type pricingPayload struct {
	UserID string          `json:"delika_user_table_id"`
	Prices []priceEntryDTO `json:"prices"`
}

func toPricingPayload(userID string, entries []domain.PriceEntry) pricingPayload {
	prices := make([]priceEntryDTO, 0, len(entries))
	for _, e := range entries {
		prices = append(prices, priceEntryDTO{
			Name:          e.Name,
			Price:         e.Price,
			Currency:      e.Currency,
			AmountInWords: e.AmountInWords,
			Distance:      e.DistanceKm,
		})
	}
	return pricingPayload{UserID: userID, Prices: prices}
}

type createPricingResponse struct {
	ID string `json:"id"`
}
