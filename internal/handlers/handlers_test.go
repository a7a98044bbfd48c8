package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"petlove/internal/errs"
	"petlove/internal/models"
	"petlove/internal/utils"
)

type mockDB struct{ health map[string]string }

func (m mockDB) Health() map[string]string {
	return m.health
}

func (mockDB) Client() *mongo.Client {
	return nil
}

func (mockDB) Database() *mongo.Database {
	return nil
}

func (mockDB) EnsureIndexes(context.Context) error {
	return nil
}

func (mockDB) Close(context.Context) error {
	return nil
}

func withID(req *http.Request, id string) *http.Request {
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestRootAndHealth(t *testing.T) {
	h := NewCommonHandler(mockDB{health: map[string]string{"status": "up", "message": "It's healthy"}})

	rec := httptest.NewRecorder()
	h.RootHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"PetLove API Running!"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := NewCommonHandler(mockDB{health: map[string]string{"status": "down", "message": "db down"}})
	rec = httptest.NewRecorder()
	down.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetPetInvalidID(t *testing.T) {
	svc := new(MockPetService)
	h := NewPetHandler(svc)

	rec := httptest.NewRecorder()
	h.GetPet(rec, withID(httptest.NewRequest(http.MethodGet, "/api/pets/abc", nil), "abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid ID format"}`, rec.Body.String())
	svc.AssertNotCalled(t, "GetPet", mock.Anything, mock.Anything)
}

func TestGetPetNotFound(t *testing.T) {
	svc := new(MockPetService)
	h := NewPetHandler(svc)
	id := models.NewID()
	svc.On("GetPet", mock.Anything, id).Return(nil, fmt.Errorf("pet %w", errs.ErrNotFound))

	rec := httptest.NewRecorder()
	h.GetPet(rec, withID(httptest.NewRequest(http.MethodGet, "/api/pets/"+id.Hex(), nil), id.Hex()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"pet not found"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestCreatePet(t *testing.T) {
	svc := new(MockPetService)
	h := NewPetHandler(svc)
	created := &models.Pet{Base: models.NewBase(), Name: "Rex", Species: models.SpeciesDog, Status: models.PetAvailable}
	svc.On("CreatePet", mock.Anything, mock.MatchedBy(func(p *models.Pet) bool { return p.Name == "Rex" })).Return(created, nil)

	rec := httptest.NewRecorder()
	h.CreatePet(rec, httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader(`{"name":"Rex","species":"dog"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, created.ID.Hex(), body["_id"])
	assert.Equal(t, "available", body["status"])
	svc.AssertExpectations(t)
}

func TestCreatePetValidation(t *testing.T) {
	svc := new(MockPetService)
	h := NewPetHandler(svc)

	rec := httptest.NewRecorder()
	h.CreatePet(rec, httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader(`{"species":"dog"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"name"`)
	svc.AssertNotCalled(t, "CreatePet", mock.Anything, mock.Anything)
}

func TestListPets(t *testing.T) {
	svc := new(MockPetService)
	h := NewPetHandler(svc)
	owner := models.NewID()
	svc.On("ListPets", mock.Anything, models.PetFilter{Species: models.SpeciesCat, OwnerID: &owner}, models.Pagination{Limit: 10, Skip: 5}).
		Return([]models.Pet{}, int64(7), nil)

	rec := httptest.NewRecorder()
	h.ListPets(rec, httptest.NewRequest(http.MethodGet, "/api/pets?species=cat&owner_id="+owner.Hex()+"&limit=10&skip=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
	assert.Equal(t, "7", rec.Header().Get("X-Total-Count"))
	svc.AssertExpectations(t)

	rec = httptest.NewRecorder()
	h.ListPets(rec, httptest.NewRequest(http.MethodGet, "/api/pets?owner_id=nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid ID format"}`, rec.Body.String())
}

func TestDeletePet(t *testing.T) {
	svc := new(MockPetService)
	h := NewPetHandler(svc)
	id := models.NewID()
	svc.On("DeletePet", mock.Anything, id).Return(nil)

	rec := httptest.NewRecorder()
	h.DeletePet(rec, withID(httptest.NewRequest(http.MethodDelete, "/api/pets/"+id.Hex(), nil), id.Hex()))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc)
	user := &models.User{Base: models.NewBase(), Name: "Ana", Email: "ana@example.com", Role: models.RoleCustomer}
	svc.On("RegisterUser", mock.Anything, mock.AnythingOfType("*models.User")).Return(user, nil)
	svc.On("LoginUser", mock.Anything, &models.Login{Email: "ana@example.com", Password: "wrong1"}).Return("", errs.ErrInvalidCredentials)

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/users/register",
		strings.NewReader(`{"name":"Ana","email":"ana@example.com","password":"secret123"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"email":"ana@example.com","password":"wrong1"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestGetMyProfile(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc)
	user := &models.User{Base: models.NewBase(), Name: "Ana", Email: "ana@example.com"}
	svc.On("GetUser", mock.Anything, user.ID).Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req = req.WithContext(utils.WithUserID(req.Context(), user.ID))
	rec := httptest.NewRecorder()
	h.GetMyProfile(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.GetMyProfile(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateUserRoleRequiresAdmin(t *testing.T) {
	id := models.NewID()
	promoted := &models.User{Base: models.NewBase(), Role: models.RoleVeterinarian}

	tests := []struct {
		name string
		role models.UserRole
		want int
	}{
		{"customer", models.RoleCustomer, http.StatusForbidden},
		{"veterinarian", models.RoleVeterinarian, http.StatusForbidden},
		{"admin", models.RoleAdmin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			h := NewUserHandler(svc)
			if tt.want == http.StatusOK {
				svc.On("UpdateUser", mock.Anything, id, mock.AnythingOfType("*models.UserUpdate")).Return(promoted, nil)
			}

			req := withID(httptest.NewRequest(http.MethodPatch, "/api/users/"+id.Hex(), strings.NewReader(`{"role":"veterinarian"}`)), id.Hex())
			req = req.WithContext(utils.WithUserRole(utils.WithUserID(req.Context(), id), tt.role))
			rec := httptest.NewRecorder()
			h.UpdateUser(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestUpdateAdoptionStatus(t *testing.T) {
	svc := new(MockAdoptionService)
	h := NewAdoptionHandler(svc)
	id := models.NewID()
	approved := &models.Adoption{Base: models.NewBase(), Status: models.AdoptionApproved}
	svc.On("UpdateAdoptionStatus", mock.Anything, id, models.AdoptionApproved, "looks good").Return(approved, nil)
	svc.On("UpdateAdoptionStatus", mock.Anything, id, models.AdoptionCompleted, "").
		Return(nil, fmt.Errorf("%w: adoption cannot move from pending to completed", errs.ErrInvalidStatusTransition))

	rec := httptest.NewRecorder()
	h.UpdateAdoptionStatus(rec, withID(httptest.NewRequest(http.MethodPatch, "/api/adoptions/"+id.Hex()+"/status",
		strings.NewReader(`{"status":"approved","notes":"looks good"}`)), id.Hex()))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.UpdateAdoptionStatus(rec, withID(httptest.NewRequest(http.MethodPatch, "/api/adoptions/"+id.Hex()+"/status",
		strings.NewReader(`{"status":"completed"}`)), id.Hex()))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.UpdateAdoptionStatus(rec, withID(httptest.NewRequest(http.MethodPatch, "/api/adoptions/"+id.Hex()+"/status",
		strings.NewReader(`{}`)), id.Hex()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertExpectations(t)
}
