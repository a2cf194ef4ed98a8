package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nmoreno/tallerplus/backend/internal/middleware"
	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/internal/services"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
)

type QuotationHandler struct {
	requestService   *services.QuotationRequestService
	quotationService *services.QuotationService
	userService      *services.UserService
}

func NewQuotationHandler(requestService *services.QuotationRequestService, quotationService *services.QuotationService, userService *services.UserService) *QuotationHandler {
	return &QuotationHandler{
		requestService:   requestService,
		quotationService: quotationService,
		userService:      userService,
	}
}

// ListRequests returns open requests for workshops and own requests for
// customers.
// GET /api/quotation-requests
func (h *QuotationHandler) ListRequests(c *gin.Context) {
	var (
		requests []models.QuotationRequest
		err      error
	)
	if middleware.GetRole(c) == models.RoleCustomer {
		requests, err = h.requestService.ListByCustomer(middleware.GetUserID(c))
	} else {
		requests, err = h.requestService.ListOpen()
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, requests)
}

// CreateRequest files a repair request
// POST /api/quotation-requests
func (h *QuotationHandler) CreateRequest(c *gin.Context) {
	var req services.CreateQuotationRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	request, err := h.requestService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// CloseRequest withdraws a repair request
// POST /api/quotation-requests/:id/close
func (h *QuotationHandler) CloseRequest(c *gin.Context) {
	request, err := h.requestService.Close(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, request)
}

// ListQuotationsForRequest returns the quotations answering a request
// GET /api/quotation-requests/:id/quotations
func (h *QuotationHandler) ListQuotationsForRequest(c *gin.Context) {
	quotations, err := h.quotationService.ListForRequest(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, quotations)
}

// CreateQuotation files a quotation against a request
// POST /api/quotations
func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	var req services.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	quotation, err := h.quotationService.Create(workshopID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, quotation)
}

// ListQuotations returns the caller workshop's quotations
// GET /api/quotations
func (h *QuotationHandler) ListQuotations(c *gin.Context) {
	workshopID, ok := callerWorkshopID(c, h.userService)
	if !ok {
		return
	}

	quotations, err := h.quotationService.ListByWorkshop(workshopID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, quotations)
}

// AcceptQuotation accepts a quotation and opens the work order
// POST /api/quotations/:id/accept
func (h *QuotationHandler) AcceptQuotation(c *gin.Context) {
	workOrder, err := h.quotationService.Accept(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, workOrder)
}

// RejectQuotation declines a quotation
// POST /api/quotations/:id/reject
func (h *QuotationHandler) RejectQuotation(c *gin.Context) {
	quotation, err := h.quotationService.Reject(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, quotation)
}
