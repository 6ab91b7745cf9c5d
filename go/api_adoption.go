package adoptionserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	accountsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/domain"
	adoptionsmapper "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/adapters/http/mapper"
	adoptionsdomain "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/domain"
	adoptionsports "github.com/Apurer/go-gin-adoption-server/internal/domains/adoptions/ports"
	apierrors "github.com/Apurer/go-gin-adoption-server/internal/shared/errors"
)

// AdoptionAPI serves the adoption request workflow.
type AdoptionAPI struct {
	service adoptionsports.Service
}

// NewAdoptionAPI wires dependencies.
func NewAdoptionAPI(service adoptionsports.Service) AdoptionAPI {
	return AdoptionAPI{service: service}
}

// Post /adopt_pet
// Adopters apply for themselves; admins may file on behalf of user_id.
func (api *AdoptionAPI) AdoptPet(c *gin.Context) {
	var form adoptionsmapper.ApplyForm
	if !bind(c, "Error processing adoption", &form) {
		return
	}
	identity, _ := CurrentIdentity(c)
	userID, ok := actingUserID(c, identity, form.UserID, "Error processing adoption")
	if !ok {
		return
	}
	adoption, err := api.service.Apply(c.Request.Context(), userID, form.PetID)
	if err != nil {
		respondError(c, "Error processing adoption", err)
		return
	}
	respondCreated(c, "Adoption request submitted.", adoption.ID)
}

// Get /get_adoptions
// Adopters only ever see their own requests.
func (api *AdoptionAPI) GetAdoptions(c *gin.Context) {
	var query adoptionsmapper.AdoptionQuery
	if !bind(c, "Error fetching adoptions", &query) {
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithCause(err).WithMessage("Error fetching adoptions"))
		return
	}
	identity, _ := CurrentIdentity(c)
	if !identity.IsAdmin() {
		own := identity.UserID
		filter.UserID = &own
	}
	adoptions, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Error fetching adoptions", err)
		return
	}
	c.JSON(http.StatusOK, adoptionsmapper.FromDomainAdoptions(adoptions))
}

// Post /approve_adoption
func (api *AdoptionAPI) ApproveAdoption(c *gin.Context) {
	api.decide(c, api.service.Approve, "Error approving adoption", "Adoption approved successfully.")
}

// Post /reject_adoption
func (api *AdoptionAPI) RejectAdoption(c *gin.Context) {
	api.decide(c, api.service.Reject, "Error rejecting adoption", "Adoption rejected successfully.")
}

// Post /cancel_adoption
func (api *AdoptionAPI) CancelAdoption(c *gin.Context) {
	var form adoptionsmapper.AdoptionIDForm
	if !bind(c, "Error cancelling adoption", &form) {
		return
	}
	identity, _ := CurrentIdentity(c)
	actor := adoptionsports.Actor{UserID: identity.UserID, Admin: identity.IsAdmin()}
	adoption, err := api.service.Cancel(c.Request.Context(), form.AdoptionID, actor)
	if err != nil {
		respondError(c, "Error cancelling adoption", err)
		return
	}
	respondMessage(c, http.StatusOK, "Adoption cancelled successfully.", gin.H{"status": adoption.Status})
}

func (api *AdoptionAPI) decide(c *gin.Context, transition func(ctx context.Context, id int64) (*adoptionsdomain.Adoption, error), failure, success string) {
	var form adoptionsmapper.AdoptionIDForm
	if !bind(c, failure, &form) {
		return
	}
	adoption, err := transition(c.Request.Context(), form.AdoptionID)
	if err != nil {
		respondError(c, failure, err)
		return
	}
	respondMessage(c, http.StatusOK, success, gin.H{"status": adoption.Status})
}

// actingUserID resolves whose behalf a request acts on. Only admins may name
// another user.
func actingUserID(c *gin.Context, identity accountsdomain.Identity, requested *int64, message string) (int64, bool) {
	if requested == nil || *requested <= 0 || *requested == identity.UserID {
		return identity.UserID, true
	}
	if !identity.IsAdmin() {
		respondProblem(c, apierrors.ErrForbidden.WithDetail("only admins may act for another user").WithMessage(message))
		return 0, false
	}
	return *requested, true
}
