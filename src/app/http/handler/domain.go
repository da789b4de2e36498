package handler

import (
	"github.com/gin-gonic/gin"

	"isiledger/src/app/http/dto"
	"isiledger/src/app/http/response"
	"isiledger/src/app/middleware"
	"isiledger/src/core/usecase"
)

// DomainHandler serves domain and account reads and domain creation.
type DomainHandler struct {
	ledger *usecase.LedgerService
}

func NewDomainHandler(ledger *usecase.LedgerService) *DomainHandler {
	return &DomainHandler{ledger: ledger}
}

// Create registers an empty domain.
// POST /v1/domains
func (h *DomainHandler) Create(c *gin.Context) {
	var req dto.CreateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	d, err := h.ledger.CreateDomain(c.Request.Context(), req.Name)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, dto.DomainResponse{}.FromDomain(d))
}

// List returns every domain.
// GET /v1/domains
func (h *DomainHandler) List(c *gin.Context) {
	domains := h.ledger.Domains(c.Request.Context())
	out := make([]dto.DomainSummary, 0, len(domains))
	for _, d := range domains {
		out = append(out, dto.DomainSummary{}.FromDomain(d))
	}
	response.OK(c, out)
}

// Get returns one domain with its accounts.
// GET /v1/domains/:name
func (h *DomainHandler) Get(c *gin.Context) {
	d, err := h.ledger.Domain(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.DomainResponse{}.FromDomain(d))
}

// GetAccount returns one account.
// GET /v1/domains/:name/accounts/:account_id
func (h *DomainHandler) GetAccount(c *gin.Context) {
	acc, err := h.ledger.Account(c.Request.Context(), c.Param("name"), c.Param("account_id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.AccountResponse{}.FromDomain(acc))
}
