package handler

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	return m.product(m.Called(ctx, req))
}

func (m *MockProductService) SetPromo(ctx context.Context, id string, req *model.SetPromoRequest) (*model.Product, error) {
	return m.product(m.Called(ctx, id, req))
}

func (m *MockProductService) ClearPromo(ctx context.Context, id string) (*model.Product, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductService) SetAvailability(ctx context.Context, id string, available bool) (*model.Product, error) {
	return m.product(m.Called(ctx, id, available))
}

func (m *MockProductService) product(args mock.Arguments) (*model.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (model.CartSnapshot, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(model.CartSnapshot), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, sessionID, productID string) (model.CartSnapshot, error) {
	args := m.Called(ctx, sessionID, productID)
	return args.Get(0).(model.CartSnapshot), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, sessionID, productID string) (model.CartSnapshot, error) {
	args := m.Called(ctx, sessionID, productID)
	return args.Get(0).(model.CartSnapshot), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) (model.CartSnapshot, error) {
	args := m.Called(ctx, sessionID, productID, delta)
	return args.Get(0).(model.CartSnapshot), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockVoucherService is a mock implementation of VoucherService.
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) Issue(ctx context.Context, req *model.IssueVoucherRequest) (*model.Voucher, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Voucher), args.Error(1)
}

func (m *MockVoucherService) SetActive(ctx context.Context, userID string, active bool) (*model.Voucher, error) {
	args := m.Called(ctx, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Voucher), args.Error(1)
}

func (m *MockVoucherService) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockVoucherService) Check(ctx context.Context, userID, code string) (*model.VoucherCheckResponse, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoucherCheckResponse), args.Error(1)
}

func (m *MockVoucherService) List(ctx context.Context) ([]model.Voucher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Voucher), args.Error(1)
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, sessionID, userID, voucherCode string) (*model.CheckoutSummary, error) {
	args := m.Called(ctx, sessionID, userID, voucherCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutSummary), args.Error(1)
}

// MockReportService is a mock implementation of ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ExportSales(ctx context.Context, since time.Time) (*model.ReportResponse, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportResponse), args.Error(1)
}
