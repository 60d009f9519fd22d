package stream

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const defaultBaseURL = "https://chat.stream-io-api.com"

// Client talks to the chat provider's identity API. Upserts go over HTTP;
// token minting is a local signing operation with the provider secret.
type Client struct {
	apiKey    string
	apiSecret []byte
	baseURL   string
}

func New(apiKey, apiSecret string) *Client {
	return NewWithBaseURL(apiKey, apiSecret, defaultBaseURL)
}

func NewWithBaseURL(apiKey, apiSecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{apiKey: apiKey, apiSecret: []byte(apiSecret), baseURL: baseURL}
}

// UpsertUser creates or updates the remote identity record keyed by id.
// Repeating the call with the same id and new name/image updates in place.
func (c *Client) UpsertUser(id, name, image string) error {
	serverToken, err := c.signClaims(jwt.MapClaims{"server": true})
	if err != nil {
		return err
	}

	payload := fiber.Map{
		"users": map[string]fiber.Map{
			id: {
				"id":    id,
				"name":  name,
				"image": image,
			},
		},
	}

	agent := fiber.Post(c.baseURL + "/users?api_key=" + c.apiKey)
	agent.Set("Authorization", serverToken)
	agent.Set("Stream-Auth-Type", "jwt")
	agent.JSON(payload)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return errs[0]
	}
	if code < 200 || code >= 300 {
		return fmt.Errorf("upsert user: status %d: %s", code, body)
	}

	return nil
}

// CreateToken mints a provider-scoped token the frontend uses to connect to
// the chat service as userID. No expiry: the provider treats these as
// long-lived client credentials.
func (c *Client) CreateToken(userID string) (string, error) {
	return c.signClaims(jwt.MapClaims{"user_id": userID})
}

func (c *Client) signClaims(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.apiSecret)
}
