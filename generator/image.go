package generator

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	Logger "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// ImageClient produces an optional hero image for an article. Always
// best-effort: a failure or an unconfigured capability never blocks
// persistence.
type ImageClient interface {
	GenerateHeroImage(ctx context.Context, topic string) (string, error)
}

// NoopImageClient is the default when no image endpoint is configured.
type NoopImageClient struct{}

func (NoopImageClient) GenerateHeroImage(ctx context.Context, topic string) (string, error) {
	return "", nil
}

// RestImageClient posts a prompt to a generic image-generation endpoint and
// expects `{"url": "..."}` back.
type RestImageClient struct {
	client  *resty.Client
	baseUrl string
	apiKey  string
}

func NewRestImageClient(baseUrl, apiKey string) *RestImageClient {
	return &RestImageClient{
		client:  resty.New().SetTimeout(60 * time.Second),
		baseUrl: baseUrl,
		apiKey:  apiKey,
	}
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type imageResponse struct {
	Url string `json:"url"`
}

func (c *RestImageClient) GenerateHeroImage(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf("Minimal tech illustration with geometric shapes on dark background, representing %s. No text in image.", topic)

	result := &imageResponse{}
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(imageRequest{Prompt: prompt, Width: 1200, Height: 630}).
		SetResult(result).
		Post(c.baseUrl)
	if err != nil {
		return "", errors.Wrap(err, "fail to generate hero image")
	}
	if resp.IsError() {
		return "", errors.Errorf("image endpoint returned %d", resp.StatusCode())
	}
	return result.Url, nil
}

// PlaceholderImageUrl builds a static placeholder cover when generation is
// unavailable but a cover is still wanted by the front end.
func PlaceholderImageUrl(width, height int, text string) string {
	return fmt.Sprintf("https://via.placeholder.com/%dx%d/2563eb/ffffff?text=%s", width, height, url.QueryEscape(text))
}

// maybeHeroImage wraps the client call with logging; all failures degrade to
// no image.
func maybeHeroImage(ctx context.Context, client ImageClient, topic string) string {
	if client == nil {
		return ""
	}
	heroUrl, err := client.GenerateHeroImage(ctx, topic)
	if err != nil {
		Logger.Log.Warnf("hero image generation failed for %q: %v", topic, err)
		return ""
	}
	return heroUrl
}
