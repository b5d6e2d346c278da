/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package generate talks to the configured language model and turns its
// answers into deck content. Three operations are exposed: drafting an
// outline from a topic, producing one element payload from a prompt, and
// proposing new geometry for a slide's existing elements. Model output is
// JSON-schema validated before anything reaches the deck; layout responses
// in particular may only move elements, never rewrite them.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"log/slog"
	"slidesmith/internal/config"
	"slidesmith/internal/domain"
	applog "slidesmith/internal/log"
	"slidesmith/internal/storage"
)

// Client generates deck content through a chat model.
type Client struct {
	cm model.BaseChatModel
	l  *slog.Logger
}

// New builds a Client from the LLM config and API key.
func New(ctx context.Context, cfg config.LLMConfig, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("generate: API key is not configured")
	}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("generate: create chat model: %w", err)
	}
	return &Client{cm: cm, l: applog.WithComponent("generate")}, nil
}

// NewWithModel wraps an existing chat model; used by tests and alternative providers.
func NewWithModel(cm model.BaseChatModel) *Client {
	return &Client{cm: cm, l: applog.WithComponent("generate")}
}

const outlineSystemPrompt = `You draft presentation outlines. Answer with markdown only:
a single "# Deck Title" line, then one "## Slide Title" section per slide with
3-5 "-" bullets each. Optional "Notes:" lines hold speaker notes; optional
"[chart: ...]" or "[image: ...]" lines suggest visuals. No prose outside the outline.`

// DraftOutline asks the model for a slide-by-slide outline of the topic.
// The returned text is raw outline markdown; parse it with the outline package.
func (c *Client) DraftOutline(ctx context.Context, topic, audience string, slideCount int) (string, error) {
	if slideCount <= 0 {
		slideCount = 8
	}
	user := fmt.Sprintf("Topic: %s\nSlides: %d", topic, slideCount)
	if strings.TrimSpace(audience) != "" {
		user += "\nAudience: " + audience
	}
	resp, err := c.cm.Generate(ctx, []*schema.Message{
		{Role: schema.System, Content: outlineSystemPrompt},
		{Role: schema.User, Content: user},
	})
	if err != nil {
		return "", fmt.Errorf("generate outline: %w", err)
	}
	out := stripFences(resp.Content)
	c.l.Info("outline drafted", slog.Int("bytes", len(out)))
	return out, nil
}

const elementSystemPrompt = `You produce content for a single presentation element.
Answer with one JSON object only, no commentary, no markdown fences.`

var elementUserPrompts = map[domain.ElementKind]string{
	domain.KindText:  `Write the text for a slide text block. JSON fields: "content" (string, the text), optional "size" ("title"|"heading"|"body"|"caption"), "weight" ("normal"|"bold"), "align" ("left"|"center"|"right").`,
	domain.KindImage: `Describe an image for a slide. JSON fields: "alt" (string, one sentence describing the image to render). Do not include image bytes.`,
	domain.KindIcon:  `Produce a simple monochrome SVG icon. JSON fields: "svg" (string, a complete <svg> element using currentColor), optional "color" (hex).`,
	domain.KindChart: `Produce data for a small chart. JSON fields: "type" ("bar"|"line"|"pie"), "labels" (array of strings), "values" (array of numbers, same length), optional "series" (string legend).`,
}

// Element generates one element payload of the given kind from the prompt.
// The element comes back without a frame; callers position it.
func (c *Client) Element(ctx context.Context, kind domain.ElementKind, prompt string) (domain.Element, error) {
	if !kind.Valid() {
		return domain.Element{}, domain.ErrBadKind
	}
	resp, err := c.cm.Generate(ctx, []*schema.Message{
		{Role: schema.System, Content: elementSystemPrompt},
		{Role: schema.User, Content: elementUserPrompts[kind] + "\n\nRequest: " + prompt},
	})
	if err != nil {
		return domain.Element{}, fmt.Errorf("generate %s element: %w", kind, err)
	}
	raw := stripFences(resp.Content)
	if err := validatePayload(kind, raw); err != nil {
		return domain.Element{}, err
	}
	el := domain.Element{Kind: kind}
	switch kind {
	case domain.KindText:
		el.Text = &domain.TextPayload{}
		err = json.Unmarshal([]byte(raw), el.Text)
	case domain.KindImage:
		el.Image = &domain.ImagePayload{}
		err = json.Unmarshal([]byte(raw), el.Image)
	case domain.KindIcon:
		el.Icon = &domain.IconPayload{}
		err = json.Unmarshal([]byte(raw), el.Icon)
	case domain.KindChart:
		el.Chart = &domain.ChartPayload{}
		err = json.Unmarshal([]byte(raw), el.Chart)
	}
	if err != nil {
		return domain.Element{}, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return el, nil
}

const layoutSystemPrompt = `You rearrange elements on a 16:9 presentation slide.
Coordinates are percent of the canvas: x/y is the top-left corner, w/h the size,
all in 0-100. Improve balance and avoid overlaps. Answer with a JSON array only:
[{"id": "<element id>", "frame": {"x":0,"y":0,"w":0,"h":0}}, ...]. Include every
element exactly once and never invent ids.`

// Layout asks the model for new geometry for the slide's elements and returns
// frame patches keyed by element id. Content never leaves this function: the
// model sees ids, kinds and current frames, not payloads, and only frames come
// back.
func (c *Client) Layout(ctx context.Context, sl domain.Slide) ([]storage.FramePatch, error) {
	type brief struct {
		ID    string       `json:"id"`
		Kind  string       `json:"kind"`
		Frame domain.Frame `json:"frame"`
	}
	briefs := make([]brief, 0, len(sl.Elements))
	for _, el := range sl.Elements {
		briefs = append(briefs, brief{ID: el.ID, Kind: string(el.Kind), Frame: el.Frame})
	}
	b, err := json.Marshal(briefs)
	if err != nil {
		return nil, fmt.Errorf("marshal layout brief: %w", err)
	}
	resp, err := c.cm.Generate(ctx, []*schema.Message{
		{Role: schema.System, Content: layoutSystemPrompt},
		{Role: schema.User, Content: string(b)},
	})
	if err != nil {
		return nil, fmt.Errorf("generate layout: %w", err)
	}
	raw := stripFences(resp.Content)
	if err := validateLayout(raw); err != nil {
		return nil, err
	}
	var patches []storage.FramePatch
	if err := json.Unmarshal([]byte(raw), &patches); err != nil {
		return nil, fmt.Errorf("decode layout response: %w", err)
	}
	return patches, nil
}

// stripFences removes a surrounding markdown code fence if the model added one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the language tag line
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
