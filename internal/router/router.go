package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"gymgate/internal/auth"
	"gymgate/internal/config"
	"gymgate/internal/handler"
	"gymgate/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	visitHandler *handler.VisitHandler,
	planHandler *handler.PlanHandler,
	equipmentHandler *handler.EquipmentHandler,
	reportHandler *handler.ReportHandler,
	backupHandler *handler.BackupHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}), extractClaims(tokenStore))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)
	secured.PUT("/auth/password", authHandler.ChangePassword)

	// Member routes
	secured.POST("/members", memberHandler.CreateMember)
	secured.GET("/members", memberHandler.ListMembers)
	secured.GET("/members/:id", memberHandler.GetMember)
	secured.PUT("/members/:id", memberHandler.UpdateMember)
	secured.DELETE("/members/:id", memberHandler.DeleteMember)
	secured.POST("/members/:id/renew", memberHandler.RenewMember)
	secured.GET("/members/:id/visits", visitHandler.History)

	// Check-in
	secured.POST("/visits/checkin", visitHandler.CheckIn)

	// Plan routes
	secured.POST("/plans", planHandler.CreatePlan)
	secured.GET("/plans", planHandler.ListPlans)
	secured.GET("/plans/:id", planHandler.GetPlan)
	secured.PUT("/plans/:id", planHandler.UpdatePlan)
	secured.DELETE("/plans/:id", planHandler.DeletePlan)

	// Equipment routes
	secured.POST("/equipment", equipmentHandler.CreateEquipment)
	secured.GET("/equipment", equipmentHandler.ListEquipment)
	secured.GET("/equipment/:id", equipmentHandler.GetEquipment)
	secured.PUT("/equipment/:id", equipmentHandler.UpdateEquipment)
	secured.DELETE("/equipment/:id", equipmentHandler.DeleteEquipment)
	secured.POST("/equipment/:id/maintenance", equipmentHandler.RecordMaintenance)

	// Report routes
	secured.GET("/reports/summary", reportHandler.Summary)
	secured.GET("/reports/revenue", reportHandler.RevenueByPlan)
	secured.GET("/reports/visits", reportHandler.Visits)
	secured.GET("/reports/equipment", reportHandler.Equipment)
	secured.GET("/reports/expired", reportHandler.ExpiredMembers)

	// Admin-only routes
	admin := secured.Group("", requireAdmin)
	admin.POST("/auth/register", authHandler.Register)
	admin.POST("/auth/reset-password", authHandler.ResetPassword)
	admin.POST("/backup", backupHandler.Backup)
	admin.POST("/backup/restore", backupHandler.Restore)
}

// extractClaims pulls the typed claims out of the parsed token so handlers
// don't have to deal with *jwt.Token, and rejects tokens revoked at logout.
func extractClaims(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			if claims.ID != "" {
				revoked, _ := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}
			c.Set("claims", claims)
			return next(c)
		}
	}
}

// requireAdmin rejects requests whose token does not carry the admin role.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("claims").(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
		}
		if claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
