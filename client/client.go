// Package client talks to the social-server REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const apiPrefix = "/api/v1"

type Post struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Login authenticates and keeps the token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var s Session
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	var u User
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Feed(ctx context.Context, userID string) ([]Post, error) {
	var posts []Post
	err := c.do(ctx, http.MethodGet, "/thefeed/"+url.PathEscape(userID), nil, &posts)
	return posts, err
}

func (c *Client) Timeline(ctx context.Context, userID string) ([]Post, error) {
	var posts []Post
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/timeline", nil, &posts)
	return posts, err
}

// CreatePost posts onto receiverID's timeline; "" means the caller's own.
func (c *Client) CreatePost(ctx context.Context, receiverID, content string) (*Post, error) {
	var p Post
	body := map[string]string{"receiverId": receiverID, "content": content}
	if err := c.do(ctx, http.MethodPost, "/posts", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Follow(ctx context.Context, followeeID string) error {
	return c.do(ctx, http.MethodPost, "/follow", map[string]string{"followeeId": followeeID}, nil)
}

func (c *Client) Unfollow(ctx context.Context, followeeID string) error {
	return c.do(ctx, http.MethodDelete, "/follow", map[string]string{"followeeId": followeeID}, nil)
}

func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/users/search?query="+url.QueryEscape(query), nil, &users)
	return users, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
