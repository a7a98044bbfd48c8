package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"petlove/internal/models"
)

// MockPetService is a mock implementation of services.PetService.
type MockPetService struct {
	mock.Mock
}

func (m *MockPetService) CreatePet(ctx context.Context, pet *models.Pet) (*models.Pet, error) {
	args := m.Called(ctx, pet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *MockPetService) GetPet(ctx context.Context, petID models.ID) (*models.Pet, error) {
	args := m.Called(ctx, petID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *MockPetService) ListPets(ctx context.Context, filter models.PetFilter, page models.Pagination) ([]models.Pet, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Pet), args.Get(1).(int64), args.Error(2)
}

func (m *MockPetService) UpdatePet(ctx context.Context, petID models.ID, updatePayload *models.PetUpdate) (*models.Pet, error) {
	args := m.Called(ctx, petID, updatePayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pet), args.Error(1)
}

func (m *MockPetService) DeletePet(ctx context.Context, petID models.ID) error {
	args := m.Called(ctx, petID)
	return args.Error(0)
}

// MockUserService is a mock implementation of services.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) LoginUser(ctx context.Context, creds *models.Login) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID models.ID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, filter models.UserFilter, page models.Pagination) ([]models.User, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID models.ID, updatePayload *models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, userID, updatePayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID models.ID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAdoptionService is a mock implementation of services.AdoptionService.
type MockAdoptionService struct {
	mock.Mock
}

func (m *MockAdoptionService) CreateAdoption(ctx context.Context, adoption *models.Adoption) (*models.Adoption, error) {
	args := m.Called(ctx, adoption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Adoption), args.Error(1)
}

func (m *MockAdoptionService) GetAdoption(ctx context.Context, adoptionID models.ID) (*models.Adoption, error) {
	args := m.Called(ctx, adoptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Adoption), args.Error(1)
}

func (m *MockAdoptionService) ListAdoptions(ctx context.Context, filter models.AdoptionFilter, page models.Pagination) ([]models.Adoption, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Adoption), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdoptionService) UpdateAdoption(ctx context.Context, adoptionID models.ID, updatePayload *models.AdoptionUpdate) (*models.Adoption, error) {
	args := m.Called(ctx, adoptionID, updatePayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Adoption), args.Error(1)
}

func (m *MockAdoptionService) UpdateAdoptionStatus(ctx context.Context, adoptionID models.ID, status models.AdoptionStatus, notes string) (*models.Adoption, error) {
	args := m.Called(ctx, adoptionID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Adoption), args.Error(1)
}

func (m *MockAdoptionService) DeleteAdoption(ctx context.Context, adoptionID models.ID) error {
	args := m.Called(ctx, adoptionID)
	return args.Error(0)
}

type MockPasswordResetService struct {
	mock.Mock
}

func (m *MockPasswordResetService) RequestReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockPasswordResetService) ResetPassword(ctx context.Context, req *models.ResetPassword) error {
	return m.Called(ctx, req).Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Summary(ctx context.Context, window models.StatsWindow) (*models.StatsSummary, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatsSummary), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID models.ID) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, filter models.OrderFilter, page models.Pagination) ([]models.Order, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, orderID models.ID, updatePayload *models.OrderUpdate) (*models.Order, error) {
	args := m.Called(ctx, orderID, updatePayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, orderID models.ID, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, orderID models.ID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	args := m.Called(ctx, appointment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentService) GetAppointment(ctx context.Context, appointmentID models.ID) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentService) ListAppointments(ctx context.Context, filter models.AppointmentFilter, page models.Pagination) ([]models.Appointment, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Appointment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAppointmentService) UpdateAppointment(ctx context.Context, appointmentID models.ID, updatePayload *models.AppointmentUpdate) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID, updatePayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentService) UpdateAppointmentStatus(ctx context.Context, appointmentID models.ID, status models.AppointmentStatus) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentService) DeleteAppointment(ctx context.Context, appointmentID models.ID) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

type MockVisitService struct {
	mock.Mock
}

func (m *MockVisitService) CreateVisit(ctx context.Context, visit *models.Visit) (*models.Visit, error) {
	args := m.Called(ctx, visit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *MockVisitService) GetVisit(ctx context.Context, visitID models.ID) (*models.Visit, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *MockVisitService) ListVisits(ctx context.Context, filter models.VisitFilter, page models.Pagination) ([]models.Visit, int64, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Visit), args.Get(1).(int64), args.Error(2)
}

func (m *MockVisitService) UpdateVisit(ctx context.Context, visitID models.ID, updatePayload *models.VisitUpdate) (*models.Visit, error) {
	args := m.Called(ctx, visitID, updatePayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *MockVisitService) DeleteVisit(ctx context.Context, visitID models.ID) error {
	args := m.Called(ctx, visitID)
	return args.Error(0)
}
