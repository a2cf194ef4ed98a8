package services

import (
	"errors"
	"testing"

	"github.com/nmoreno/tallerplus/backend/internal/models"
	"github.com/nmoreno/tallerplus/backend/pkg/response"
	"gorm.io/gorm"
)

type quotationFixture struct {
	db         *gorm.DB
	quotations *QuotationService
	requests   *QuotationRequestService
	customer   *models.User
	workshop   *models.Workshop
	request    *models.QuotationRequest
}

func newQuotationFixture(t *testing.T) *quotationFixture {
	t.Helper()
	db := setupTestDB(t)

	customer := createTestUser(t, db, "cliente@example.com", "password123", models.RoleCustomer)

	workshop := &models.Workshop{Name: "Taller Central"}
	if err := db.Create(workshop).Error; err != nil {
		t.Fatalf("failed to create workshop: %v", err)
	}

	brand := &models.Brand{Name: "Seat"}
	db.Create(brand)
	model := &models.VehicleModel{Name: "Ibiza", BrandID: brand.ID}
	db.Create(model)
	vehicle := &models.Vehicle{Plate: "1234ABC", Year: 2019, OwnerID: customer.ID, BrandID: brand.ID, ModelID: model.ID}
	if err := db.Create(vehicle).Error; err != nil {
		t.Fatalf("failed to create vehicle: %v", err)
	}

	flags := NewFeatureFlagService(db)
	notifications := NewNotificationService(db, flags)
	requests := NewQuotationRequestService(db)
	quotations := NewQuotationService(db, requests, notifications)

	request, err := requests.Create(customer.ID, &CreateQuotationRequestRequest{
		Description: "Brake pads grinding on the front axle",
		VehicleID:   vehicle.ID,
	})
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	return &quotationFixture{
		db:         db,
		quotations: quotations,
		requests:   requests,
		customer:   customer,
		workshop:   workshop,
		request:    request,
	}
}

func sampleItems() []QuotationItemRequest {
	return []QuotationItemRequest{
		{Kind: models.ItemKindPart, Description: "Brake pads front", Quantity: 2, UnitPrice: 45.50},
		{Kind: models.ItemKindLabor, Description: "Replacement labor", Quantity: 1.5, UnitPrice: 60},
	}
}

func TestCreateQuotationComputesTotal(t *testing.T) {
	f := newQuotationFixture(t)

	quotation, err := f.quotations.Create(f.workshop.ID, &CreateQuotationRequest{
		RequestID: f.request.ID,
		Items:     sampleItems(),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := 2*45.50 + 1.5*60
	if quotation.Total != want {
		t.Errorf("Total = %v, expected %v", quotation.Total, want)
	}
	if quotation.Status != models.QuotationStatusPending {
		t.Errorf("Status = %q, expected PENDING", quotation.Status)
	}
	if len(quotation.Items) != 2 {
		t.Errorf("Items = %d, expected 2", len(quotation.Items))
	}

	// First quotation flips the request to QUOTED.
	request, _ := f.requests.GetByID(f.request.ID)
	if request.Status != models.RequestStatusQuoted {
		t.Errorf("request Status = %q, expected QUOTED", request.Status)
	}
}

func TestCreateQuotationOncePerWorkshop(t *testing.T) {
	f := newQuotationFixture(t)

	if _, err := f.quotations.Create(f.workshop.ID, &CreateQuotationRequest{RequestID: f.request.ID, Items: sampleItems()}); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := f.quotations.Create(f.workshop.ID, &CreateQuotationRequest{RequestID: f.request.ID, Items: sampleItems()})
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Errorf("second Create() error = %v, expected 409", err)
	}
}

func TestAcceptQuotationOpensWorkOrder(t *testing.T) {
	f := newQuotationFixture(t)

	other := &models.Workshop{Name: "Taller Norte"}
	f.db.Create(other)

	winner, _ := f.quotations.Create(f.workshop.ID, &CreateQuotationRequest{RequestID: f.request.ID, Items: sampleItems()})
	loser, _ := f.quotations.Create(other.ID, &CreateQuotationRequest{RequestID: f.request.ID, Items: sampleItems()})

	order, err := f.quotations.Accept(winner.ID, f.customer.ID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if order.Status != models.WorkOrderStatusOpen {
		t.Errorf("work order Status = %q, expected OPEN", order.Status)
	}
	if order.QuotationID != winner.ID {
		t.Errorf("work order QuotationID = %q, expected %q", order.QuotationID, winner.ID)
	}

	accepted, _ := f.quotations.GetByID(winner.ID)
	if accepted.Status != models.QuotationStatusAccepted {
		t.Errorf("winner Status = %q, expected ACCEPTED", accepted.Status)
	}
	rejected, _ := f.quotations.GetByID(loser.ID)
	if rejected.Status != models.QuotationStatusRejected {
		t.Errorf("sibling Status = %q, expected REJECTED", rejected.Status)
	}

	request, _ := f.requests.GetByID(f.request.ID)
	if request.Status != models.RequestStatusClosed {
		t.Errorf("request Status = %q, expected CLOSED", request.Status)
	}
}

func TestAcceptQuotationTwiceFails(t *testing.T) {
	f := newQuotationFixture(t)

	quotation, _ := f.quotations.Create(f.workshop.ID, &CreateQuotationRequest{RequestID: f.request.ID, Items: sampleItems()})
	if _, err := f.quotations.Accept(quotation.ID, f.customer.ID); err != nil {
		t.Fatalf("first Accept() error = %v", err)
	}

	_, err := f.quotations.Accept(quotation.ID, f.customer.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Errorf("second Accept() error = %v, expected 409", err)
	}
}

func TestAcceptQuotationWrongCustomer(t *testing.T) {
	f := newQuotationFixture(t)
	stranger := createTestUser(t, f.db, "otro@example.com", "password123", models.RoleCustomer)

	quotation, _ := f.quotations.Create(f.workshop.ID, &CreateQuotationRequest{RequestID: f.request.ID, Items: sampleItems()})

	_, err := f.quotations.Accept(quotation.ID, stranger.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 403 {
		t.Errorf("Accept() by stranger error = %v, expected 403", err)
	}
}

func TestQuotationOnClosedRequest(t *testing.T) {
	f := newQuotationFixture(t)

	if _, err := f.requests.Close(f.request.ID, f.customer.ID); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, err := f.quotations.Create(f.workshop.ID, &CreateQuotationRequest{RequestID: f.request.ID, Items: sampleItems()})
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Errorf("Create() on closed request error = %v, expected 409", err)
	}
}
