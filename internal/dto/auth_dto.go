package dto

type RegisterRequest struct {
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	FullName      string `json:"full_name"`
	Qualification string `json:"qualification"`
	DateOfBirth   string `json:"date_of_birth"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
