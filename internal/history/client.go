package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/purvjoshi04/SharedInk/internal/domain"
	"github.com/purvjoshi04/SharedInk/internal/shape"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

const defaultTimeout = 10 * time.Second

// Client fetches the persisted drawing history of a room over the REST
// API so a joining peer can seed its local canvas before live traffic.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient creates a history client for the API at baseURL. token is
// sent as a bearer credential when non-empty.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		token:   token,
	}
}

// FetchShapes retrieves the stored messages of a room and decodes each
// one into a shape. Entries that cannot be decoded are skipped rather
// than failing the whole fetch; history written by older builds may
// contain payloads the current decoder no longer accepts.
func (c *Client) FetchShapes(ctx context.Context, roomID string) ([]shape.Shape, error) {
	endpoint := fmt.Sprintf("%s/chats/%s", c.baseURL, url.PathEscape(roomID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build history request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch history: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload domain.MessagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}

	l := log.Ctx(ctx)
	shapes := make([]shape.Shape, 0, len(payload.Messages))
	for _, msg := range payload.Messages {
		s, ok := decodeShape(msg.Content)
		if !ok {
			l.Debug().Str(log.FieldRoomID, roomID).Msg("skipping undecodable history entry")
			continue
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// decodeShape accepts both the wrapped form {"shape": {...}} that live
// chat frames use and a bare shape object.
func decodeShape(raw string) (shape.Shape, bool) {
	var wrapper struct {
		Shape json.RawMessage `json:"shape"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err == nil && len(wrapper.Shape) > 0 {
		var s shape.Shape
		if err := json.Unmarshal(wrapper.Shape, &s); err == nil {
			return s, true
		}
	}

	var s shape.Shape
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		return s, true
	}
	return shape.Shape{}, false
}
