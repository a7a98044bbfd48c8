package models

type UserRole string

const (
	RoleCustomer     UserRole = "customer"
	RoleVeterinarian UserRole = "veterinarian"
	RoleAdmin        UserRole = "admin"
)

type User struct {
	Base     `bson:",inline"`
	Name     string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email    string   `json:"email" bson:"email" validate:"required,email,max=254"`
	Password string   `json:"password,omitempty" bson:"password" validate:"required,min=6,max=72"`
	Phone    string   `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,max=30"`
	Address  string   `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=500"`
	Role     UserRole `json:"role" bson:"role" validate:"omitempty,oneof=customer veterinarian admin"`
}

type UserUpdate struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email    *string   `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Password *string   `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
	Phone    *string   `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address  *string   `json:"address,omitempty" validate:"omitempty,max=500"`
	Role     *UserRole `json:"role,omitempty" validate:"omitempty,oneof=customer veterinarian admin"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserFilter struct {
	Role  UserRole
	Email string
}
