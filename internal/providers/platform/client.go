package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"modmail/internal/config"

	"go.uber.org/zap"
)

type restClient struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.SugaredLogger
}

func NewRESTClient(cfg *config.Config, logger *zap.Logger) Client {
	tr := &http.Transport{}
	tr.MaxIdleConnsPerHost = 64

	return &restClient{
		baseURL: cfg.PlatformAPIURL,
		token:   cfg.PlatformToken,
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: tr,
		},
		logger: logger.Sugar(),
	}
}

func (c *restClient) ResolveUser(ctx context.Context, userID string) (*User, error) {
	var user User
	found, err := c.get(ctx, fmt.Sprintf("/users/%s", userID), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (c *restClient) ResolveMember(ctx context.Context, guildID, userID string) (*Member, error) {
	var member Member
	found, err := c.get(ctx, fmt.Sprintf("/guilds/%s/members/%s", guildID, userID), &member)
	if err != nil || !found {
		return nil, err
	}
	if member.GuildID == "" {
		member.GuildID = guildID
	}
	return &member, nil
}

func (c *restClient) SendDirectMessage(ctx context.Context, userID string, msg OutboundMessage) error {
	return c.post(ctx, fmt.Sprintf("/users/%s/messages", userID), msg)
}

func (c *restClient) SendChannelMessage(ctx context.Context, channelID string, msg OutboundMessage) error {
	return c.post(ctx, fmt.Sprintf("/channels/%s/messages", channelID), msg)
}

// get unmarshals into out and reports whether the entity exists. A 404 is
// not an error.
func (c *restClient) get(ctx context.Context, path string, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warnw("Platform request returned an error",
			"path", path,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return false, fmt.Errorf("platform returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode platform response: %w", err)
	}
	return true, nil
}

func (c *restClient) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warnw("Platform delivery failed",
			"path", path,
			"status", resp.StatusCode,
			"body", string(respBody),
		)
		return fmt.Errorf("platform returned status %d for %s", resp.StatusCode, path)
	}
	return nil
}

func (c *restClient) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bot "+c.token)
	}
}
