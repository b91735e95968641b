package models

type Business struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BusinessInput struct {
	Name string `json:"name" binding:"required"`
}

type Manager struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	BranchID *int64 `json:"branch_id,omitempty"`
}

// AccountInput registers an admin account (manager by an owner, owner by a developer).
type AccountInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty"`
}

type ManagerUpdate struct {
	Name string `json:"name" binding:"required"`
}

// Created is the generic backend reply to a create call.
type Created struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ID          int64  `json:"id"`
}
