/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a small HTTP client for the slidesmith backend API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient returns a client for the given base URL (e.g., http://localhost:8080).
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Deck is the projection returned by the /api/decks listing.
type Deck struct {
	ID        int64     `json:"id"`
	StableID  string    `json:"stable_id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// IndexSnapshot is the envelope returned by /api/decks/{id}/index.
type IndexSnapshot struct {
	DeckID    int64           `json:"deck_id"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	Snapshot  json.RawMessage `json:"snapshot"`
}

// FetchToken requests a bearer token for the given subject.
func (c *Client) FetchToken(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	body, err := json.Marshal(map[string]any{
		"subject":     subject,
		"ttl_seconds": int64(ttl / time.Second),
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/auth/token", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed: %s", resp.Status)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	c.Token = out.Token
	return out.Token, nil
}

// ListDecks returns the decks known to the backend.
func (c *Client) ListDecks(ctx context.Context) ([]Deck, error) {
	var decks []Deck
	if err := c.getJSON(ctx, "/api/decks", &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

// GetDeck returns one deck by backend id.
func (c *Client) GetDeck(ctx context.Context, deckID int64) (*Deck, error) {
	var d Deck
	if err := c.getJSON(ctx, fmt.Sprintf("/api/decks/%d", deckID), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetIndexSnapshot returns the latest index snapshot for a deck.
func (c *Client) GetIndexSnapshot(ctx context.Context, deckID int64) (*IndexSnapshot, error) {
	var snap IndexSnapshot
	if err := c.getJSON(ctx, fmt.Sprintf("/api/decks/%d/index", deckID), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) getJSON(ctx context.Context, p string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+p, nil)
	if err != nil {
		return err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("GET %s: %s: %s", p, resp.Status, bytes.TrimSpace(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
