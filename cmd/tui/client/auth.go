package client

import "net/http"

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (c *Client) Register(email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(email, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me() (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
