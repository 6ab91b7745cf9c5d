package adoptionserver

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	accountsmapper "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/http/mapper"
	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	accountsports "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
	adoptionsmapper "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/adapters/http/mapper"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	adoptionsports "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/ports"
	catalogmapper "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-adoption-server/internal/domains/catalog/ports"
	reviewsmapper "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/adapters/http/mapper"
	reviewsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/domain"
	reviewsports "github.com/Apurer/go-gin-adoption-server/internal/domains/reviews/ports"
	apierrors "github.com/Apurer/go-gin-adoption-server/internal/shared/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	dashboardLoginPath   = "/dashboard/login"
	dashboardAdminPath   = "/dashboard/admin"
	dashboardAdopterPath = "/dashboard/adopter"
)

// Dashboard renders the admin and adopter HTML pages on top of the same
// services as the JSON API. Identity comes from the session cookie.
type Dashboard struct {
	accounts  accountsports.Service
	catalog   catalogports.Service
	adoptions adoptionsports.Service
	reviews   reviewsports.Service
	cookie    CookieSettings
	templates *template.Template
}

// NewDashboard parses the embedded templates.
func NewDashboard(accounts accountsports.Service, catalog catalogports.Service, adoptions adoptionsports.Service, reviews reviewsports.Service, cookie CookieSettings) (*Dashboard, error) {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	tmpl, err := template.New("dashboard").Funcs(template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		"deref": func(v *int) string {
			if v == nil {
				return ""
			}
			return strconv.Itoa(*v)
		},
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		accounts:  accounts,
		catalog:   catalog,
		adoptions: adoptions,
		reviews:   reviews,
		cookie:    cookie,
		templates: tmpl,
	}, nil
}

func (d *Dashboard) register(router *gin.Engine) {
	router.SetHTMLTemplate(d.templates)

	router.GET(dashboardLoginPath, d.loginPage)
	router.POST(dashboardLoginPath, d.login)
	router.GET("/dashboard/logout", d.logout)
	router.POST("/dashboard/logout", d.logout)
	router.GET("/dashboard", d.requireRole(), d.home)

	admin := router.Group(dashboardAdminPath, d.requireRole(accountsdomain.RoleAdmin))
	admin.GET("", d.adminPage)
	admin.POST("/pet_types", d.adminAddPetType)
	admin.POST("/pets", d.adminAddPet)
	admin.POST("/pets/:id/delete", d.adminDeletePet)
	admin.POST("/adoptions/:id/approve", d.adminApprove)
	admin.POST("/adoptions/:id/reject", d.adminReject)
	admin.POST("/users/:id/delete", d.adminDeleteUser)

	adopter := router.Group(dashboardAdopterPath, d.requireRole(accountsdomain.RoleAdopter))
	adopter.GET("", d.adopterPage)
	adopter.POST("/apply", d.adopterApply)
	adopter.POST("/adoptions/:id/cancel", d.adopterCancel)
	adopter.POST("/reviews", d.adopterReview)
}

// requireRole redirects anonymous visitors to the login page and answers 403
// for a role outside roles. No roles means any signed-in user.
func (d *Dashboard) requireRole(roles ...accountsdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.Redirect(http.StatusFound, dashboardLoginPath)
			c.Abort()
			return
		}
		if len(roles) == 0 {
			c.Next()
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		c.HTML(http.StatusForbidden, "error.tmpl", gin.H{
			"Title":    "Forbidden",
			"Message":  "Your account cannot open this page.",
			"Identity": identity,
		})
		c.Abort()
	}
}

func (d *Dashboard) loginPage(c *gin.Context) {
	if _, ok := CurrentIdentity(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"Error": c.Query("error")})
}

func (d *Dashboard) login(c *gin.Context) {
	var form accountsmapper.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.tmpl", gin.H{"Error": "Email and password are required.", "Email": form.Email})
		return
	}
	session, err := d.accounts.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		problem := responder.Problem(err)
		c.HTML(problem.Status, "login.tmpl", gin.H{"Error": "Invalid email or password.", "Email": form.Email})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(d.cookie.Name, session.Token, d.cookie.MaxAge, "/", "", d.cookie.Secure, true)
	c.Redirect(http.StatusFound, homeFor(session.Identity))
}

func (d *Dashboard) logout(c *gin.Context) {
	if token, err := c.Cookie(d.cookie.Name); err == nil {
		_ = d.accounts.Logout(c.Request.Context(), token)
	}
	c.SetCookie(d.cookie.Name, "", -1, "/", "", d.cookie.Secure, true)
	c.Redirect(http.StatusFound, dashboardLoginPath)
}

func (d *Dashboard) home(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	c.Redirect(http.StatusFound, homeFor(identity))
}

func homeFor(identity accountsdomain.Identity) string {
	if identity.IsAdmin() {
		return dashboardAdminPath
	}
	return dashboardAdopterPath
}

type adoptionRow struct {
	adoptionsmapper.Adoption
	PetName  string
	Username string
	Pending  bool
	Approved bool
}

func (d *Dashboard) adminPage(c *gin.Context) {
	ctx := c.Request.Context()
	identity, _ := CurrentIdentity(c)
	types, err := d.catalog.ListPetTypes(ctx)
	if err != nil {
		d.renderError(c, err)
		return
	}
	pets, err := d.catalog.ListPets(ctx, catalogdomain.PetFilter{})
	if err != nil {
		d.renderError(c, err)
		return
	}
	adoptions, err := d.adoptions.List(ctx, adoptionsdomain.Filter{})
	if err != nil {
		d.renderError(c, err)
		return
	}
	users, err := d.accounts.ListUsers(ctx)
	if err != nil {
		d.renderError(c, err)
		return
	}
	usernames := make(map[int64]string, len(users))
	for _, user := range users {
		usernames[user.ID] = user.Username
	}
	c.HTML(http.StatusOK, "admin.tmpl", gin.H{
		"Identity":  identity,
		"Notice":    c.Query("notice"),
		"Error":     c.Query("error"),
		"PetTypes":  catalogmapper.FromDomainPetTypes(types),
		"Pets":      catalogmapper.FromDomainPets(pets),
		"Adoptions": adoptionRows(adoptions, petNames(pets), usernames),
		"Users":     accountsmapper.FromDomainUsers(users),
	})
}

func (d *Dashboard) adopterPage(c *gin.Context) {
	ctx := c.Request.Context()
	identity, _ := CurrentIdentity(c)
	allPets, err := d.catalog.ListPets(ctx, catalogdomain.PetFilter{})
	if err != nil {
		d.renderError(c, err)
		return
	}
	available := make([]catalogmapper.Pet, 0, len(allPets))
	for _, pet := range allPets {
		if pet.Available {
			available = append(available, catalogmapper.FromDomainPet(pet))
		}
	}
	own := identity.UserID
	adoptions, err := d.adoptions.List(ctx, adoptionsdomain.Filter{UserID: &own})
	if err != nil {
		d.renderError(c, err)
		return
	}
	reviews, err := d.reviews.List(ctx, reviewsdomain.Filter{UserID: &own})
	if err != nil {
		d.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "adopter.tmpl", gin.H{
		"Identity":  identity,
		"Notice":    c.Query("notice"),
		"Error":     c.Query("error"),
		"Pets":      available,
		"Adoptions": adoptionRows(adoptions, petNames(allPets), map[int64]string{own: identity.Username}),
		"Reviews":   reviewsmapper.FromDomainReviews(reviews),
	})
}

func (d *Dashboard) adminAddPetType(c *gin.Context) {
	_, err := d.catalog.AddPetType(c.Request.Context(), c.PostForm("type_name"), c.PostForm("description"))
	d.redirectAfter(c, dashboardAdminPath, "Pet type added.", err)
}

func (d *Dashboard) adminAddPet(c *gin.Context) {
	var form catalogmapper.PetForm
	if err := c.ShouldBind(&form); err != nil {
		d.redirectAfter(c, dashboardAdminPath, "", apierrors.ErrBadRequest.WithCause(err))
		return
	}
	var image *catalogports.Image
	if header, err := c.FormFile("image_url"); err == nil && header.Filename != "" {
		file, err := header.Open()
		if err != nil {
			d.redirectAfter(c, dashboardAdminPath, "", err)
			return
		}
		defer closeUpload(file)
		image = &catalogports.Image{Filename: header.Filename, Content: file}
	}
	identity, _ := CurrentIdentity(c)
	createdBy := identity.UserID
	_, err := d.catalog.AddPet(c.Request.Context(), form.ToAddPetInput(&createdBy, image))
	d.redirectAfter(c, dashboardAdminPath, "Pet added.", err)
}

func (d *Dashboard) adminDeletePet(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		err = d.catalog.DeletePet(c.Request.Context(), id)
	}
	d.redirectAfter(c, dashboardAdminPath, "Pet deleted.", err)
}

func (d *Dashboard) adminApprove(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		_, err = d.adoptions.Approve(c.Request.Context(), id)
	}
	d.redirectAfter(c, dashboardAdminPath, "Adoption approved.", err)
}

func (d *Dashboard) adminReject(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		_, err = d.adoptions.Reject(c.Request.Context(), id)
	}
	d.redirectAfter(c, dashboardAdminPath, "Adoption rejected.", err)
}

func (d *Dashboard) adminDeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		identity, _ := CurrentIdentity(c)
		err = d.accounts.DeleteUser(c.Request.Context(), identity, id)
	}
	d.redirectAfter(c, dashboardAdminPath, "User deleted.", err)
}

func (d *Dashboard) adopterApply(c *gin.Context) {
	petID, err := strconv.ParseInt(c.PostForm("pet_id"), 10, 64)
	if err == nil {
		identity, _ := CurrentIdentity(c)
		_, err = d.adoptions.Apply(c.Request.Context(), identity.UserID, petID)
	} else {
		err = apierrors.ErrBadRequest.WithDetail("pet_id must be a number")
	}
	d.redirectAfter(c, dashboardAdopterPath, "Adoption request submitted.", err)
}

func (d *Dashboard) adopterCancel(c *gin.Context) {
	id, err := pathID(c)
	if err == nil {
		identity, _ := CurrentIdentity(c)
		_, err = d.adoptions.Cancel(c.Request.Context(), id, adoptionsports.Actor{UserID: identity.UserID})
	}
	d.redirectAfter(c, dashboardAdopterPath, "Adoption cancelled.", err)
}

func (d *Dashboard) adopterReview(c *gin.Context) {
	var form reviewsmapper.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		d.redirectAfter(c, dashboardAdopterPath, "", apierrors.ErrBadRequest.WithCause(err))
		return
	}
	identity, _ := CurrentIdentity(c)
	_, err := d.reviews.Submit(c.Request.Context(), form.ToSubmitInput(identity.UserID))
	d.redirectAfter(c, dashboardAdopterPath, "Review submitted.", err)
}

// redirectAfter implements post/redirect/get, carrying the outcome in the query string.
func (d *Dashboard) redirectAfter(c *gin.Context, target, notice string, err error) {
	values := url.Values{}
	if err != nil {
		values.Set("error", responder.Problem(err).Detail)
	} else if notice != "" {
		values.Set("notice", notice)
	}
	if encoded := values.Encode(); encoded != "" {
		target += "?" + encoded
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (d *Dashboard) renderError(c *gin.Context, err error) {
	problem := responder.Problem(err)
	identity, _ := CurrentIdentity(c)
	c.HTML(problem.Status, "error.tmpl", gin.H{
		"Title":    problem.Title,
		"Message":  problem.Detail,
		"Identity": identity,
	})
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierrors.ErrBadRequest.WithDetail("id must be a positive integer")
	}
	return id, nil
}

func petNames(pets []*catalogdomain.Pet) map[int64]string {
	names := make(map[int64]string, len(pets))
	for _, pet := range pets {
		names[pet.ID] = pet.Name
	}
	return names
}

func adoptionRows(adoptions []*adoptionsdomain.Adoption, pets, users map[int64]string) []adoptionRow {
	rows := make([]adoptionRow, 0, len(adoptions))
	for _, adoption := range adoptions {
		rows = append(rows, adoptionRow{
			Adoption: adoptionsmapper.FromDomainAdoption(adoption),
			PetName:  pets[adoption.PetID],
			Username: users[adoption.UserID],
			Pending:  adoption.IsPending(),
			Approved: adoption.IsApproved(),
		})
	}
	return rows
}
