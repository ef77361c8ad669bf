package models

import (
	"time"

	"github.com/lib/pq"
)

// Lead is an advertiser's offer listed on the marketplace.
type Lead struct {
	ID            string `db:"id" json:"id"`
	UserID        string `db:"user_id" json:"userId"`
	CountryRegion string `db:"country_region" json:"countryRegion"`
	StateProvince string `db:"state_province" json:"stateProvince"`
	City          string `db:"city" json:"city"`
	PostalCode    string `db:"postal_code" json:"postalCode"`
	Category      string `db:"category" json:"category"`
	SubCategory   string `db:"sub_category" json:"subCategory"`
	FullName      string `db:"full_name" json:"fullName"`
	OfferType     string `db:"offer_type" json:"offerType"`

	// Payouts is the per-lead payout in the marketplace currency.
	Payouts float64 `db:"payouts" json:"payouts"`

	IsMerchantAllowedToRefuseLeads bool `db:"is_merchant_allowed_to_refuse_leads" json:"isMerchantAllowedToRefuseLeads"`

	// LeadsLimit caps how many leads the offer accepts, nil for unlimited.
	LeadsLimit *int `db:"leads_limit" json:"leadsLimit"`

	MaterialModeration bool           `db:"material_moderation" json:"materialModeration"`
	Tools              pq.StringArray `db:"tools" json:"tools"`
	ImageURL           *string        `db:"image_url" json:"imageUrl"`

	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// LeadWithOwner is the affiliate-facing projection of a lead joined with the
// advertiser who posted it.
type LeadWithOwner struct {
	Lead
	OwnerUsername string `db:"owner_username" json:"ownerUsername"`
	OwnerEmail    string `db:"owner_email" json:"ownerEmail"`
}
