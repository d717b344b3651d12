package main

import (
	"context"
	"time"
)

// GreetInput is the POST /api/hello body.
type GreetInput struct {
	Name string `json:"name"`
}

// Greeting is returned by every hello route. Timestamp is in Unix
// milliseconds.
type Greeting struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// TokenResponse is returned by POST /api/token.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type greeter struct {
	now func() time.Time
}

func (g greeter) greet(_ context.Context, in GreetInput) (Greeting, error) {
	return Greeting{Message: "Hello " + in.Name + "!", Timestamp: g.now().UnixMilli()}, nil
}

func (g greeter) hello(context.Context, map[string]string) (Greeting, error) {
	return Greeting{Message: "Hello World!", Timestamp: g.now().UnixMilli()}, nil
}
