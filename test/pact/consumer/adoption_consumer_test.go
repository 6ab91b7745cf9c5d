//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-adoption-server/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type petPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Breed     string `json:"breed"`
	Available bool   `json:"available"`
}

type createdPayload struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type problemDetail struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestAdoptionPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	fixture := pacttest.ExamplePetFixture()
	petBodyMatcher := matchers.Map{
		"id":          matchers.Like(pacttest.AvailablePetID),
		"name":        matchers.Like(fixture.Name),
		"breed":       matchers.Like(fixture.Breed),
		"age":         matchers.Like(fixture.Age),
		"gender":      matchers.Like(fixture.Gender),
		"pet_type_id": matchers.Like(1),
		"available":   matchers.Like(true),
		"created_at":  matchers.Like("2024-06-12T10:00:00Z"),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	applyForm := url.Values{"pet_id": {fmt.Sprint(pacttest.AvailablePetID)}}.Encode()

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("a request to list available pets").
		WithRequest("GET", "/get_pets", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("available", matchers.S("true"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.ArrayMinLike(petBodyMatcher, 1))
		})

	pact.AddInteraction().
		Given(pacttest.StatePetAvailable).
		UponReceiving("a request to fetch an available pet").
		WithRequest("GET", fmt.Sprintf("/get_pet/%d", pacttest.AvailablePetID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(petBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StatePetMissing).
		UponReceiving("a request for a missing pet").
		WithRequest("GET", fmt.Sprintf("/get_pet/%d", pacttest.MissingPetID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":    matchers.S("/problems/not-found"),
				"title":   matchers.S("Resource Not Found"),
				"status":  matchers.Like(http.StatusNotFound),
				"message": matchers.S("Error fetching pet"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateAdopterSession).
		UponReceiving("an adoption request from a signed-in adopter").
		WithRequest("POST", "/adopt_pet", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", matchers.S("Bearer "+pacttest.AdopterToken))
			b.Body("application/x-www-form-urlencoded", []byte(applyForm))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"message": matchers.S("Adoption request submitted."),
				"id":      matchers.Like(1),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newPortalClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		pets, err := client.ListAvailablePets(ctx)
		if err != nil {
			return fmt.Errorf("list pets: %w", err)
		}
		if len(pets) == 0 || !pets[0].Available {
			return fmt.Errorf("expected at least one available pet, got %+v", pets)
		}

		fetched, err := client.GetPet(ctx, pacttest.AvailablePetID)
		if err != nil {
			return fmt.Errorf("get pet: %w", err)
		}
		if fetched == nil || fetched.ID != pacttest.AvailablePetID {
			return fmt.Errorf("expected pet id %d, got %+v", pacttest.AvailablePetID, fetched)
		}

		if _, err := client.GetPet(ctx, pacttest.MissingPetID); err == nil {
			return fmt.Errorf("expected 404 for pet %d", pacttest.MissingPetID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		created, err := client.Adopt(ctx, pacttest.AdopterToken, pacttest.AvailablePetID)
		if err != nil {
			return fmt.Errorf("adopt pet: %w", err)
		}
		if created.ID == 0 {
			return fmt.Errorf("expected adoption id to be set")
		}
		return nil
	})
	require.NoError(t, err)
}

type portalClient struct {
	baseURL    string
	httpClient *http.Client
}

func newPortalClient(config pactconsumer.MockServerConfig) *portalClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &portalClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *portalClient) ListAvailablePets(ctx context.Context) ([]petPayload, error) {
	var pets []petPayload
	if err := c.do(ctx, http.MethodGet, "/get_pets?available=true", "", nil, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

func (c *portalClient) GetPet(ctx context.Context, id int64) (*petPayload, error) {
	var pet petPayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/get_pet/%d", id), "", nil, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (c *portalClient) Adopt(ctx context.Context, token string, petID int64) (*createdPayload, error) {
	form := url.Values{"pet_id": {fmt.Sprint(petID)}}
	var created createdPayload
	if err := c.do(ctx, http.MethodPost, "/adopt_pet", token, form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *portalClient) do(ctx context.Context, method, path, token string, form url.Values, out any) error {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
