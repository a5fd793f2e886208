package container

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// HireDetail records the hire terms of a hired-in container. Exactly one
// exists per container with owner type HiredIn. An open-ended hire has a
// start date and no end date. The record is immutable except through the
// administrative correction operation.
type HireDetail struct {
	hirer     string
	reference string
	startDate kernel.Date
	endDate   *kernel.Date
	dailyRate float64
}

// NewHireDetail creates a hire record. The end date is optional; when set it
// must not precede the start date.
func NewHireDetail(hirer, reference string, startDate kernel.Date, endDate *kernel.Date, dailyRate float64) (*HireDetail, error) {
	if hirer == "" {
		return nil, errs.NewValueIsRequiredError("hirer")
	}
	if err := startDate.Validate(); err != nil {
		return nil, err
	}
	if endDate != nil {
		if err := endDate.Validate(); err != nil {
			return nil, err
		}
		if endDate.Before(startDate) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"endDate", fmt.Errorf("%s precedes hire start %s", endDate, startDate))
		}
	}
	if dailyRate < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"dailyRate", fmt.Errorf("%f is negative", dailyRate))
	}

	return &HireDetail{
		hirer:     hirer,
		reference: reference,
		startDate: startDate,
		endDate:   endDate,
		dailyRate: dailyRate,
	}, nil
}

// Hirer returns the hiring company.
func (h *HireDetail) Hirer() string { return h.hirer }

// Reference returns the hire agreement reference.
func (h *HireDetail) Reference() string { return h.reference }

// StartDate returns the first day of the hire.
func (h *HireDetail) StartDate() kernel.Date { return h.startDate }

// EndDate returns the last day of the hire, nil for an open-ended hire.
func (h *HireDetail) EndDate() *kernel.Date { return h.endDate }

// DailyRate returns the agreed daily rate.
func (h *HireDetail) DailyRate() float64 { return h.dailyRate }

// IsOpenEnded reports whether the hire has a start but no end date.
func (h *HireDetail) IsOpenEnded() bool { return h.endDate == nil }

// PurchaseDetail records the acquisition of an owned container. Exactly one
// exists per container with owner type Owned.
type PurchaseDetail struct {
	vendor       string
	reference    string
	purchaseDate kernel.Date
	price        float64
}

// NewPurchaseDetail creates a purchase record.
func NewPurchaseDetail(vendor, reference string, purchaseDate kernel.Date, price float64) (*PurchaseDetail, error) {
	if vendor == "" {
		return nil, errs.NewValueIsRequiredError("vendor")
	}
	if err := purchaseDate.Validate(); err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%f is negative", price))
	}

	return &PurchaseDetail{
		vendor:       vendor,
		reference:    reference,
		purchaseDate: purchaseDate,
		price:        price,
	}, nil
}

// Vendor returns the selling vendor.
func (p *PurchaseDetail) Vendor() string { return p.vendor }

// Reference returns the purchase document reference.
func (p *PurchaseDetail) Reference() string { return p.reference }

// PurchaseDate returns the acquisition date.
func (p *PurchaseDetail) PurchaseDate() kernel.Date { return p.purchaseDate }

// Price returns the purchase price.
func (p *PurchaseDetail) Price() float64 { return p.price }
