// Package greeting fetches short festive text from a generative model and
// falls back to fixed phrases whenever the model has nothing to offer.
package greeting

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNoAPIKey is returned by generators that were never given credentials.
var ErrNoAPIKey = errors.New("greeting: no API key configured")

// ErrOffline is returned when remote generation is disabled.
var ErrOffline = errors.New("greeting: offline")

// Options tune one generation request. Zero values leave the model's
// defaults in place.
type Options struct {
	Temperature float32
	TopP        float32
}

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string, opts Options) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	return f(ctx, prompt, opts)
}

// Unavailable is a Generator that always fails with Err.
type Unavailable struct {
	Err error
}

func (u Unavailable) Generate(context.Context, string, Options) (string, error) {
	return "", u.Err
}

// Gemini generates text with Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator. An empty key yields ErrNoAPIKey.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		cfg.Temperature = genai.Ptr(opts.Temperature)
	}
	if opts.TopP > 0 {
		cfg.TopP = genai.Ptr(opts.TopP)
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate with %s: %w", g.model, err)
	}
	return resp.Text(), nil
}

// NewGenerator picks the generator for the given settings: Unavailable
// when offline or without a key, Gemini otherwise.
func NewGenerator(ctx context.Context, apiKey, model string, offline bool) (Generator, error) {
	if offline {
		return Unavailable{Err: ErrOffline}, nil
	}
	g, err := NewGemini(ctx, apiKey, model)
	if errors.Is(err, ErrNoAPIKey) {
		return Unavailable{Err: ErrNoAPIKey}, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}
