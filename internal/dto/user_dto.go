package dto

type UserDTO struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Qualification string `json:"qualification"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Role          string `json:"role"`
}

type CreateUserRequest struct {
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	FullName      string `json:"full_name"`
	Qualification string `json:"qualification"`
	DateOfBirth   string `json:"date_of_birth"`
	Role          string `json:"role"`
}

type UpdateUserRequest struct {
	FullName      *string `json:"full_name"`
	Qualification *string `json:"qualification"`
	DateOfBirth   *string `json:"date_of_birth"`
	Role          *string `json:"role"`
	Password      *string `json:"password"`
}

type CreateUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"id"`
}
