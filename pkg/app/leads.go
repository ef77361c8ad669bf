package app

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
	"github.com/leadmarket/leadmarket/pkg/apis/models"
	"github.com/leadmarket/leadmarket/pkg/clock"
	"github.com/leadmarket/leadmarket/pkg/logger"
	"github.com/leadmarket/leadmarket/pkg/storage"
)

// LeadsHandler serves the lead marketplace endpoints. Affiliates browse the
// shared catalogue, advertisers manage their own offers. The page-level gate
// does not cover these API paths so each handler checks the caller's role
// itself.
type LeadsHandler struct {
	leads storage.LeadStore
	clock clock.Clock
}

// NewLeadsHandler wires the lead endpoints against the given store.
func NewLeadsHandler(leads storage.LeadStore) *LeadsHandler {
	return &LeadsHandler{leads: leads}
}

// Browse lists every live lead together with its advertiser, the affiliate
// catalogue view.
func (h *LeadsHandler) Browse(rw http.ResponseWriter, req *http.Request) {
	id, ok := requireRole(rw, req, identityapi.RoleAffiliate)
	if !ok {
		return
	}

	leads, err := h.leads.ListWithOwners(req.Context())
	if err != nil {
		logger.Errorf("Error listing leads for %s: %v", id.Email, err)
		writeError(rw, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(rw, http.StatusOK, map[string]interface{}{"leads": leads})
}

// ListOwn lists the caller's own leads, the advertiser management view.
func (h *LeadsHandler) ListOwn(rw http.ResponseWriter, req *http.Request) {
	id, ok := requireRole(rw, req, identityapi.RoleAdvertiser)
	if !ok {
		return
	}

	leads, err := h.leads.ListByOwner(req.Context(), id.ID)
	if err != nil {
		logger.Errorf("Error listing leads for %s: %v", id.Email, err)
		writeError(rw, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(rw, http.StatusOK, map[string]interface{}{"leads": leads})
}

type leadRequest struct {
	CountryRegion                  string   `json:"countryRegion"`
	StateProvince                  string   `json:"stateProvince"`
	City                           string   `json:"city"`
	PostalCode                     string   `json:"postalCode"`
	Category                       string   `json:"category"`
	SubCategory                    string   `json:"subCategory"`
	FullName                       string   `json:"fullName"`
	OfferType                      string   `json:"offerType"`
	Payouts                        float64  `json:"payouts"`
	IsMerchantAllowedToRefuseLeads bool     `json:"isMerchantAllowedToRefuseLeads"`
	LeadsLimit                     *int     `json:"leadsLimit"`
	MaterialModeration             bool     `json:"materialModeration"`
	Tools                          []string `json:"tools"`
	ImageURL                       *string  `json:"imageUrl"`
}

func (r *leadRequest) validate() string {
	switch {
	case r.FullName == "":
		return "Full name is required"
	case r.Category == "":
		return "Category is required"
	case r.CountryRegion == "":
		return "Country or region is required"
	case r.Payouts < 0:
		return "Payouts cannot be negative"
	}
	return ""
}

func (r *leadRequest) apply(lead *models.Lead) {
	lead.CountryRegion = r.CountryRegion
	lead.StateProvince = r.StateProvince
	lead.City = r.City
	lead.PostalCode = r.PostalCode
	lead.Category = r.Category
	lead.SubCategory = r.SubCategory
	lead.FullName = r.FullName
	lead.OfferType = r.OfferType
	lead.Payouts = r.Payouts
	lead.IsMerchantAllowedToRefuseLeads = r.IsMerchantAllowedToRefuseLeads
	lead.LeadsLimit = r.LeadsLimit
	lead.MaterialModeration = r.MaterialModeration
	lead.Tools = pq.StringArray(r.Tools)
	lead.ImageURL = r.ImageURL
}

// Create posts a new lead owned by the calling advertiser.
func (h *LeadsHandler) Create(rw http.ResponseWriter, req *http.Request) {
	id, ok := requireRole(rw, req, identityapi.RoleAdvertiser)
	if !ok {
		return
	}

	var body leadRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(rw, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(rw, http.StatusBadRequest, msg)
		return
	}

	now := h.clock.Now()
	lead := &models.Lead{
		ID:        uuid.New().String(),
		UserID:    id.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	body.apply(lead)

	if err := h.leads.Create(req.Context(), lead); err != nil {
		logger.Errorf("Error creating lead for %s: %v", id.Email, err)
		writeError(rw, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(rw, http.StatusCreated, map[string]interface{}{"lead": lead})
}

// Update replaces the fields of a lead the calling advertiser owns.
func (h *LeadsHandler) Update(rw http.ResponseWriter, req *http.Request) {
	id, ok := requireRole(rw, req, identityapi.RoleAdvertiser)
	if !ok {
		return
	}

	var body leadRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(rw, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := body.validate(); msg != "" {
		writeError(rw, http.StatusBadRequest, msg)
		return
	}

	lead := &models.Lead{
		ID:        mux.Vars(req)["id"],
		UserID:    id.ID,
		UpdatedAt: h.clock.Now(),
	}
	body.apply(lead)

	if err := h.leads.Update(req.Context(), lead); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(rw, http.StatusNotFound, "Lead not found")
			return
		}
		logger.Errorf("Error updating lead %s: %v", lead.ID, err)
		writeError(rw, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(rw, http.StatusOK, map[string]interface{}{"lead": lead})
}

// Delete soft deletes a lead the calling advertiser owns.
func (h *LeadsHandler) Delete(rw http.ResponseWriter, req *http.Request) {
	id, ok := requireRole(rw, req, identityapi.RoleAdvertiser)
	if !ok {
		return
	}

	leadID := mux.Vars(req)["id"]
	if err := h.leads.Delete(req.Context(), leadID, id.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(rw, http.StatusNotFound, "Lead not found")
			return
		}
		logger.Errorf("Error deleting lead %s: %v", leadID, err)
		writeError(rw, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(rw, http.StatusOK, map[string]interface{}{"success": true})
}

// requireRole resolves the request identity and enforces the given role,
// writing the error response itself when the caller does not qualify.
func requireRole(rw http.ResponseWriter, req *http.Request, role identityapi.Role) (*identityapi.Identity, bool) {
	scope := middlewareapi.GetRequestScope(req)
	if scope == nil || scope.Identity == nil {
		writeError(rw, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	if !scope.Identity.HasRole(role) {
		writeError(rw, http.StatusForbidden, "Insufficient permissions")
		return nil, false
	}
	return scope.Identity, true
}
