package api

import (
	"github.com/gofiber/fiber/v2"

	"sports-portal/internal/jwt"
)

type Handlers struct {
	Auth   *AuthHandler
	Player *PlayerHandler
	Admin  *AdminHandler
	Public *PublicHandler
}

func SetupRoutes(app *fiber.App, h Handlers, tokens *jwt.Manager, internalSecret string) {
	v1 := app.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", h.Auth.Logout)

	me := v1.Group("/players/me", AuthMiddleware(tokens))
	me.Get("/dashboard", h.Player.Dashboard)
	me.Get("/profile", h.Player.GetProfile)
	me.Put("/profile", h.Player.UpdateProfile)
	me.Post("/password", h.Player.ChangePassword)
	me.Post("/avatar/upload-url", h.Player.AvatarUploadURL)
	me.Post("/device-token", h.Player.RegisterDeviceToken)
	me.Get("/certificates", h.Player.ListCertificates)
	me.Get("/certificates/:id", h.Player.GetCertificate)
	me.Get("/certificates/:id/download", h.Player.DownloadCertificate)

	admin := v1.Group("/admin", InternalAuthMiddleware(internalSecret))
	admin.Post("/players/approve", h.Admin.Approve)
	admin.Post("/players/decline", h.Admin.Decline)
	admin.Post("/players/:id/certificates", h.Admin.CreateCertificate)
	admin.Post("/certificates/upload-url", h.Admin.CertificateUploadURL)
	admin.Get("/sports/:id/candidates", h.Admin.Candidates)
	admin.Post("/notifications", h.Admin.CreateNotification)

	v1.Get("/sports", h.Public.ListSports)
	v1.Get("/notifications", h.Public.GeneralNotifications)
	v1.Post("/feedback", h.Public.SubmitFeedback)
}
