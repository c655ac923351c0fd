// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"inkwell-server/commons"
	"inkwell-server/filestore"
	"inkwell-server/handlers"
	"inkwell-server/middlewares"
	"inkwell-server/notifications"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering api routes")

	recovery := handlers.NewRecoveryHandler(notifications.SenderFromEnv())
	blogs := handlers.NewBlogHandler(filestore.FromEnv())

	api := e.Group("/api")

	api.POST("/register", handlers.RegisterHandler)
	api.POST("/login", handlers.LoginHandler)
	api.POST("/send-otp", recovery.SendOTPHandler)
	api.POST("/verify-otp", recovery.VerifyOTPHandler)
	api.POST("/reset-password-with-otp", recovery.ResetPasswordHandler)
	api.POST("/reset-password", recovery.ResetPasswordHandler)
	api.GET("/me", handlers.GetMeHandler, middlewares.VerifySessionMiddleware)
	api.POST("/logout", handlers.LogoutHandler, middlewares.VerifySessionMiddleware)

	api.GET("/blogs", blogs.GetBlogsHandler)
	api.GET("/blogs/user/:user_id", blogs.GetUserBlogsHandler)
	api.GET("/blogs/:id", blogs.GetBlogHandler)
	api.POST("/blogs", blogs.CreateBlogHandler, middlewares.VerifySessionMiddleware)
	api.PATCH("/blogs/:id", blogs.UpdateBlogHandler, middlewares.VerifySessionMiddleware)
	api.DELETE("/blogs/:id", blogs.DeleteBlogHandler, middlewares.VerifySessionMiddleware)

	api.GET("/comments/blog/:blog_id", handlers.GetCommentsHandler)
	api.POST("/comments/blog/:blog_id", handlers.CreateCommentHandler, middlewares.VerifySessionMiddleware)
	api.DELETE("/comments/:id", handlers.DeleteCommentHandler, middlewares.VerifySessionMiddleware)

	api.GET("/likes/blog/:blog_id", handlers.GetLikeStatusHandler, middlewares.OptionalSessionMiddleware)
	api.POST("/likes/blog/:blog_id", handlers.ToggleLikeHandler, middlewares.VerifySessionMiddleware)

	commons.Logger.Info("api routes registered successfully")
}
