package aigen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"heladeria/internal/domain"
)

const (
	textModelID  = "anthropic.claude-3-sonnet-20240229-v1:0"
	imageModelID = "stability.stable-diffusion-xl-v1"
)

// BedrockText текстовая модель поверх Bedrock (Claude)
type BedrockText struct {
	client *bedrockruntime.Client
}

func NewBedrockText(client *bedrockruntime.Client) *BedrockText {
	return &BedrockText{client: client}
}

var _ TextModel = (*BedrockText)(nil)

type claudeRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Messages         []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (b *BedrockText) Describe(ctx context.Context, name string, category domain.Category) (string, error) {
	prompt := fmt.Sprintf(`Eres un experto en marketing de productos gourmet. Escribe una descripción atractiva y apetitosa para un producto llamado "%s" que es un %s.

La descripción debe:
- Ser breve (2-3 oraciones, máximo 150 palabras)
- Destacar sabores y texturas
- Ser apetitosa y persuasiva
- Estar en español
- No incluir precio ni disponibilidad

Escribe solo la descripción, sin introducción ni conclusión.`, name, category)

	payload, err := json.Marshal(claudeRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        300,
		Messages:         []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(textModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return "", fmt.Errorf("invoke text model: %w", err)
	}

	var resp claudeResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decode text response: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", errors.New("empty text response")
	}
	return strings.TrimSpace(resp.Content[0].Text), nil
}

// BedrockImage графическая модель поверх Bedrock (SDXL)
type BedrockImage struct {
	client *bedrockruntime.Client
}

func NewBedrockImage(client *bedrockruntime.Client) *BedrockImage {
	return &BedrockImage{client: client}
}

var _ ImageModel = (*BedrockImage)(nil)

type sdxlPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type sdxlRequest struct {
	TextPrompts []sdxlPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Steps       int          `json:"steps"`
	Seed        int          `json:"seed"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
}

type sdxlResponse struct {
	Artifacts []struct {
		Base64 string `json:"base64"`
	} `json:"artifacts"`
}

func (b *BedrockImage) Generate(ctx context.Context, name string, category domain.Category) ([]byte, error) {
	prompt := fmt.Sprintf("A professional, appetizing photo of %s, a delicious %s. High quality food photography, well-lit, clean background, studio lighting, commercial product shot, 4k, detailed texture", name, category)

	payload, err := json.Marshal(sdxlRequest{
		TextPrompts: []sdxlPrompt{
			{Text: prompt, Weight: 1},
			{Text: "blurry, low quality, distorted, ugly, bad composition", Weight: -1},
		},
		CfgScale: 10,
		Steps:    50,
		Seed:     rand.IntN(1000000),
		Width:    512,
		Height:   512,
	})
	if err != nil {
		return nil, err
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(imageModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke image model: %w", err)
	}

	var resp sdxlResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode image response: %w", err)
	}
	if len(resp.Artifacts) == 0 {
		return nil, errors.New("empty image response")
	}
	return base64.StdEncoding.DecodeString(resp.Artifacts[0].Base64)
}
