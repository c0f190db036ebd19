package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"dfseducation/internal/http/middleware"
	"dfseducation/internal/model"
	"dfseducation/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth         service.AuthService
	Scholarships service.ScholarshipService
	Applications service.ApplicationService
	Payments     service.PaymentService
	Wallets      service.WalletService
	Offices      service.OfficeService
	Settings     service.SettingsService
	Notify       service.Notifier
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// loginLimiter is applied to the credential endpoints only.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services, loginLimiter fiber.Handler) {
	// OpenAPI spec and Swagger UI.
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	health := NewHealthHandler(db)
	app.Get("/health", health.Ready)
	app.Get("/healthz", health.Live)

	auth := NewAuthHandler(svcs.Auth, svcs.Notify)
	public := NewPublicHandler(svcs.Scholarships, svcs.Settings)
	student := NewStudentHandler(svcs.Applications, svcs.Payments)
	office := NewOfficeHandler(svcs.Applications, svcs.Payments, svcs.Auth)
	agent := NewAgentHandler(svcs.Applications)
	hq := NewHQHandler(svcs.Applications)
	wallet := NewWalletHandler(svcs.Wallets)
	admin := NewAdminHandler(svcs.Auth, svcs.Scholarships, svcs.Payments, svcs.Wallets, svcs.Offices, svcs.Settings)

	// Public surface.
	app.Get("/scholarships", public.ListScholarships)
	app.Get("/scholarships/:id", public.GetScholarship)
	app.Get("/site-settings", public.SiteSettings)

	// Account endpoints. Login and register are rate limited.
	authGroup := app.Group("/auth")
	authGroup.Post("/register", loginLimiter, auth.Register)
	authGroup.Post("/login", loginLimiter, auth.Login)
	authGroup.Post("/logout", auth.Logout)

	authed := app.Group("", middleware.RequireAuth(svcs.Auth))
	authed.Get("/auth/me", auth.Me)
	authed.Put("/auth/me", auth.UpdateProfile)
	authed.Post("/auth/change-password", auth.ChangePassword)
	authed.Get("/notifications", auth.Notifications)
	authed.Post("/notifications/read-all", auth.MarkAllNotificationsRead)
	authed.Post("/notifications/:id/read", auth.MarkNotificationRead)

	// Student flow.
	studentGroup := authed.Group("/student", middleware.RequireRole(model.RoleUser))
	studentGroup.Get("/dashboard", student.Dashboard)
	studentGroup.Post("/applications", student.Apply)
	studentGroup.Get("/applications/:id", student.Detail)
	studentGroup.Post("/applications/:id/submit", student.Submit)
	studentGroup.Get("/applications/:id/payment", student.PaymentPage)
	studentGroup.Post("/applications/:id/payment", student.SubmitReceipt)

	// Branch office review queue.
	officeGroup := authed.Group("/office", middleware.RequireRole(model.RoleOffice))
	officeGroup.Get("/dashboard", office.Stats)
	officeGroup.Get("/applications", office.List)
	officeGroup.Post("/applications", office.CreateForStudent)
	officeGroup.Get("/applications/:id", office.Detail)
	officeGroup.Post("/applications/:id/submit", office.SubmitForStudent)
	officeGroup.Post("/applications/:id/start-review", office.StartReview)
	officeGroup.Post("/applications/:id/verify-documents", office.VerifyDocuments)
	officeGroup.Post("/applications/:id/forward", office.Forward)
	officeGroup.Get("/users", office.ListStudents)
	officeGroup.Get("/payments", office.ListPayments)
	officeGroup.Post("/payments/:id/review", office.ReviewPayment)

	// Agent decisions and upload review.
	agentGroup := authed.Group("/agent", middleware.RequireRole(model.RoleAgent))
	agentGroup.Get("/dashboard", agent.Stats)
	agentGroup.Get("/applications", agent.List)
	agentGroup.Get("/applications/:id", agent.Detail)
	agentGroup.Post("/applications/:id/approve", agent.Approve)
	agentGroup.Post("/applications/:id/reject", agent.Reject)
	agentGroup.Post("/uploads/:kind/:id/approve", agent.ApproveUpload)
	agentGroup.Post("/uploads/:kind/:id/request-revision", agent.RequestRevision)

	// Headquarters processing.
	hqGroup := authed.Group("/hq", middleware.RequireRole(model.RoleHeadquarters))
	hqGroup.Get("/dashboard", hq.Stats)
	hqGroup.Get("/applications", hq.List)
	hqGroup.Get("/applications/:id", hq.Detail)
	hqGroup.Post("/applications/:id/start", hq.MarkInProgress)
	hqGroup.Post("/applications/:id/uploads/:kind", hq.Upload)
	hqGroup.Get("/uploads/:kind/revisions", hq.RevisionQueue)

	// Commission wallet, shared by agents and HQ.
	walletGroup := authed.Group("/wallet", middleware.RequireRole(model.RoleAgent, model.RoleHeadquarters))
	walletGroup.Get("/", wallet.Overview)
	walletGroup.Get("/transactions", wallet.Transactions)
	walletGroup.Post("/withdrawals", wallet.Withdraw)

	// Superuser management surface.
	adminGroup := authed.Group("/admin", middleware.RequireSuperuser())
	adminGroup.Post("/scholarships", admin.CreateScholarship)
	adminGroup.Put("/scholarships/:id", admin.UpdateScholarship)
	adminGroup.Delete("/scholarships/:id", admin.DeleteScholarship)
	adminGroup.Get("/users", admin.ListUsers)
	adminGroup.Get("/bank-accounts", admin.ListBankAccounts)
	adminGroup.Post("/bank-accounts", admin.CreateBankAccount)
	adminGroup.Put("/bank-accounts/:id", admin.UpdateBankAccount)
	adminGroup.Get("/offices", admin.ListOffices)
	adminGroup.Post("/offices", admin.CreateOffice)
	adminGroup.Put("/offices/:id", admin.UpdateOffice)
	adminGroup.Get("/offices/:id/regions", admin.ListRegions)
	adminGroup.Post("/offices/:id/regions", admin.AddRegion)
	adminGroup.Delete("/regions/:id", admin.RemoveRegion)
	adminGroup.Put("/site-settings", admin.UpdateSettings)
	adminGroup.Post("/site-settings/assets/:slot", admin.UploadSettingsAsset)
	adminGroup.Get("/withdrawals", admin.ListPendingWithdrawals)
	adminGroup.Post("/withdrawals/:id/process", admin.ProcessWithdrawal)
}
