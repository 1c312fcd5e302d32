package dto

// SignupRequest represents a new account registration
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email" example:"student@example.edu.cn"`
	Password  string `json:"password" binding:"required"`
	StudentID string `json:"student_id" binding:"required" example:"123456789"`
	RealName  string `json:"real_name" binding:"required" example:"张三"`
}

// SignupResponse reports the created account
type SignupResponse struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message" example:"注册成功！请查收验证邮件完成邮箱验证。"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// VerifyEmailRequest carries an email verification token for consumption
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// ResendVerificationRequest asks for a fresh verification email
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ProfileResponse represents the authenticated user's account and profile
type ProfileResponse struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	StudentID     string `json:"studentId"`
	RealName      string `json:"realName"`
	IsVerified    bool   `json:"isVerified"`
	IsAdmin       bool   `json:"isAdmin"`
}
