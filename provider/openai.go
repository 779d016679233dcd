package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

const MAX_ERR_BODY_CHARS = 200

var ErrNoOutputURL = errors.New("response did not include an output url")

type OpenAIGenerator struct {
	Client  *http.Client
	BaseURL string
	Key     string
}

func NewOpenAIGenerator(client *http.Client, base_url, key string) *OpenAIGenerator {
	return &OpenAIGenerator{
		Client:  client,
		BaseURL: strings.TrimRight(base_url, "/"),
		Key:     key,
	}
}

type imagesRequest struct {
	Model  string   `json:"model"`
	Images []string `json:"images"`
}

// output_url may be top-level or nested under "data"
type imagesResponse struct {
	OutputURL string `json:"output_url"`
	Data      *struct {
		OutputURL string `json:"output_url"`
	} `json:"data,omitempty"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, model_id string, img []byte) (string, error) {
	body, err := json.Marshal(imagesRequest{
		Model:  model_id,
		Images: []string{base64.StdEncoding.EncodeToString(img)},
	})
	if err != nil {
		return "", &ProviderError{Message: "could not encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/images", bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Message: "could not build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.Key)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", &ProviderError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	resp_body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: "could not read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ProviderError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp_body),
		}
	}

	var res imagesResponse
	if err := json.Unmarshal(resp_body, &res); err != nil {
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: "could not decode response", Err: err}
	}

	url := res.OutputURL
	if url == "" && res.Data != nil {
		url = res.Data.OutputURL
	}
	if url == "" {
		return "", &ProviderError{StatusCode: resp.StatusCode, Message: "missing output_url", Err: ErrNoOutputURL}
	}

	return url, nil
}

func errorMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > MAX_ERR_BODY_CHARS {
		msg = msg[:MAX_ERR_BODY_CHARS] + "..."
	}
	return lo.Ternary(msg == "", "empty response body", msg)
}
