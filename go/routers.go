// Package adoptionserver is the HTTP transport of the adoption platform: the
// form-based JSON API, the server-rendered dashboards and their middleware.
package adoptionserver

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/Apurer/go-gin-adoption-server/api/swagger"
	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	accountsports "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
	"github.com/Apurer/go-gin-adoption-server/internal/platform/metrics"
)

// Access describes who may call a route.
type Access int

const (
	Public Access = iota
	Authenticated
	AdminOnly
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Access gates the route on the caller's session.
	Access Access
	// LoginLimited applies the per-client login rate limit.
	LoginLimited bool
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	AccountAPI  AccountAPI
	PetAPI      PetAPI
	AdoptionAPI AdoptionAPI
	ReviewAPI   ReviewAPI
	// Dashboard is optional; the HTML routes are skipped when nil.
	Dashboard *Dashboard
}

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	// Accounts resolves session tokens into identities.
	Accounts   accountsports.Service
	CookieName string

	ServiceName    string
	Metrics        *metrics.Registry
	LoginLimiter   *LoginRateLimiter
	AllowedOrigins []string

	// UploadDir is served read-only under UploadPrefix when set.
	UploadDir    string
	UploadPrefix string

	EnableSwagger bool
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	return NewRouterWithGinEngine(router, handleFunctions, opts)
}

// NewRouterWithGinEngine adds routes and middleware to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(Metrics(opts.Metrics))
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	router.Use(Authenticate(opts.Accounts, opts.CookieName))

	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		chain := routeMiddleware(route, opts)
		chain = append(chain, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, chain...)
	}

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if opts.UploadDir != "" {
		prefix := opts.UploadPrefix
		if prefix == "" {
			prefix = "/uploads"
		}
		router.Static(prefix, opts.UploadDir)
	}
	if opts.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if handleFunctions.Dashboard != nil {
		handleFunctions.Dashboard.register(router)
	}
	return router
}

func routeMiddleware(route Route, opts RouterOptions) []gin.HandlerFunc {
	var chain []gin.HandlerFunc
	if route.LoginLimited && opts.LoginLimiter != nil {
		chain = append(chain, opts.LoginLimiter.Middleware())
	}
	switch route.Access {
	case Authenticated:
		chain = append(chain, RequireIdentity())
	case AdminOnly:
		chain = append(chain, RequireIdentity(), RequireRoles(accountsdomain.RoleAdmin))
	}
	return chain
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// DefaultHandleFunc is the default handler function for unimplemented routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func welcome(c *gin.Context) {
	c.String(http.StatusOK, "🐾 Welcome to the Pet Adoption Platform API!")
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{Name: "Welcome", Method: http.MethodGet, Pattern: "/", HandlerFunc: welcome},
		{Name: "Healthz", Method: http.MethodGet, Pattern: "/healthz", HandlerFunc: healthz},

		{Name: "Register", Method: http.MethodPost, Pattern: "/register", HandlerFunc: handleFunctions.AccountAPI.Register},
		{Name: "Login", Method: http.MethodPost, Pattern: "/login", LoginLimited: true, HandlerFunc: handleFunctions.AccountAPI.Login},
		{Name: "Logout", Method: http.MethodPost, Pattern: "/logout", Access: Authenticated, HandlerFunc: handleFunctions.AccountAPI.Logout},
		{Name: "Me", Method: http.MethodGet, Pattern: "/me", Access: Authenticated, HandlerFunc: handleFunctions.AccountAPI.Me},
		{Name: "GetUsers", Method: http.MethodGet, Pattern: "/get_users", Access: AdminOnly, HandlerFunc: handleFunctions.AccountAPI.GetUsers},
		{Name: "DeleteUser", Method: http.MethodPost, Pattern: "/delete_user", Access: AdminOnly, HandlerFunc: handleFunctions.AccountAPI.DeleteUser},

		{Name: "AddPetType", Method: http.MethodPost, Pattern: "/add_pet_type", Access: AdminOnly, HandlerFunc: handleFunctions.PetAPI.AddPetType},
		{Name: "GetPetTypes", Method: http.MethodGet, Pattern: "/get_pet_types", HandlerFunc: handleFunctions.PetAPI.GetPetTypes},
		{Name: "DeletePetType", Method: http.MethodPost, Pattern: "/delete_pet_type", Access: AdminOnly, HandlerFunc: handleFunctions.PetAPI.DeletePetType},
		{Name: "AddPet", Method: http.MethodPost, Pattern: "/add_pet", Access: AdminOnly, HandlerFunc: handleFunctions.PetAPI.AddPet},
		{Name: "GetPets", Method: http.MethodGet, Pattern: "/get_pets", HandlerFunc: handleFunctions.PetAPI.GetPets},
		{Name: "GetPet", Method: http.MethodGet, Pattern: "/get_pet/:id", HandlerFunc: handleFunctions.PetAPI.GetPet},
		{Name: "DeletePet", Method: http.MethodPost, Pattern: "/delete_pet", Access: AdminOnly, HandlerFunc: handleFunctions.PetAPI.DeletePet},

		{Name: "AdoptPet", Method: http.MethodPost, Pattern: "/adopt_pet", Access: Authenticated, HandlerFunc: handleFunctions.AdoptionAPI.AdoptPet},
		{Name: "GetAdoptions", Method: http.MethodGet, Pattern: "/get_adoptions", Access: Authenticated, HandlerFunc: handleFunctions.AdoptionAPI.GetAdoptions},
		{Name: "ApproveAdoption", Method: http.MethodPost, Pattern: "/approve_adoption", Access: AdminOnly, HandlerFunc: handleFunctions.AdoptionAPI.ApproveAdoption},
		{Name: "RejectAdoption", Method: http.MethodPost, Pattern: "/reject_adoption", Access: AdminOnly, HandlerFunc: handleFunctions.AdoptionAPI.RejectAdoption},
		{Name: "CancelAdoption", Method: http.MethodPost, Pattern: "/cancel_adoption", Access: Authenticated, HandlerFunc: handleFunctions.AdoptionAPI.CancelAdoption},

		{Name: "AddReview", Method: http.MethodPost, Pattern: "/add_review", Access: Authenticated, HandlerFunc: handleFunctions.ReviewAPI.AddReview},
		{Name: "GetReviews", Method: http.MethodGet, Pattern: "/get_reviews", HandlerFunc: handleFunctions.ReviewAPI.GetReviews},
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
