// SPDX-License-Identifier: GPL-3.0-only

package handlers

import "inkwell-server/models"

// swagger:model RegisterRequest
type RegisterRequest struct {
	// Desired unique username
	// required: true
	Username string `json:"username" example:"alice99"`
	// User's email address
	// required: true
	Email string `json:"email" example:"user@example.com"`
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// Registered username
	Username string `json:"username" example:"alice99"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model UserResponse
type UserResponse struct {
	// Unique identifier for the user
	ID uint `json:"id" example:"1"`
	// Username of the account
	Username string `json:"username" example:"alice99"`
	// Email address of the account
	Email string `json:"email" example:"user@example.com"`
}

// swagger:model SendOTPRequest
type SendOTPRequest struct {
	// Email address of the account to recover
	// required: true
	Email string `json:"email" example:"user@example.com"`
}

// swagger:model VerifyOTPRequest
type VerifyOTPRequest struct {
	// Email address of the account being recovered
	// required: true
	Email string `json:"email" example:"user@example.com"`
	// The 6-digit code received by email
	// required: true
	OTP string `json:"otp" example:"123456"`
}

// swagger:model VerifyOTPResponse
type VerifyOTPResponse struct {
	// Operation status
	Status string `json:"status" example:"success"`
	// One-time token authorizing the password reset
	ResetToken string `json:"reset_token" example:"2Iu9yWVPqFhQ3...xq"`
}

// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Reset token obtained from OTP verification
	// required: true
	ResetToken string `json:"reset_token" example:"2Iu9yWVPqFhQ3...xq"`
	// The new password
	// required: true
	NewPassword string `json:"new_password" example:"MyNewPassword@456"`
}

// swagger:model StatusResponse
type StatusResponse struct {
	// Operation status
	Status string `json:"status" example:"success"`
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items matching the filter
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model BlogListResponse
type BlogListResponse struct {
	// One page of blogs with authors and aggregate counts
	Data []models.BlogDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
}

// swagger:model CommentRequest
type CommentRequest struct {
	// Comment body
	// required: true
	Content string `json:"content" example:"Great post!"`
	// Optional id of the comment being replied to
	ParentID *uint `json:"parent_id" example:"7"`
}

// swagger:model LikeStatusResponse
type LikeStatusResponse struct {
	// Whether the calling user currently likes the blog
	IsLiked bool `json:"is_liked" example:"true"`
	// Number of likes on the blog
	LikesCount int64 `json:"likes_count" example:"3"`
}

// swagger:model ToggleLikeResponse
type ToggleLikeResponse struct {
	// The like state after the toggle
	Liked bool `json:"liked" example:"true"`
	// Number of likes on the blog after the toggle
	LikesCount int64 `json:"likes_count" example:"1"`
}
