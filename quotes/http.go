package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds every quote request.
const DefaultTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// jwget performs an HTTP GET request to the given address and unmarshals the
// JSON response body into the provided data structure.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Int("status", resp.StatusCode).Msg("quote request")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Endpoint: req.URL.Host + req.URL.Path, Message: string(body)}
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fmt.Errorf("cannot decode response from %v%v: %w", req.URL.Host, req.URL.Path, err)
	}
	return nil
}

// APIError is returned when a quote service answers with a non 200 status.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cannot http GET %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}
