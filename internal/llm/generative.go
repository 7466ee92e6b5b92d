// Package llm wraps the two remote model capabilities the pipeline treats
// as black boxes per spec.md's design notes: a generative structured-output
// client (component D) and an embedding client (component C). Both are kept
// behind interfaces.GenerativeClient/EmbeddingClient so the core stays
// testable against stubs.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
	"github.com/mageshboopath1/Live-ESG-sub001/internal/interfaces"
)

// GenerativeClient implements interfaces.GenerativeClient over Anthropic
// Claude's structured-output chain.
type GenerativeClient struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	log     arbor.ILogger
}

// NewGenerativeClient builds a client for model, called with apiKey read
// from config by the caller (never os.Getenv directly, per the ambient
// config rule).
func NewGenerativeClient(apiKey, model string, timeout time.Duration) *GenerativeClient {
	return &GenerativeClient{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
		log:     common.GetLogger(),
	}
}

// extractionToolSchema mirrors spec.md §6's JSON output schema. The prompt
// instructs the model to respond with exactly this shape; a tool-call
// forces structured output rather than relying on free-text JSON framing.
var extractionToolSchema = anthropic.ToolInputSchemaParam{
	Properties: map[string]any{
		"extracted_value": map[string]any{"type": "string"},
		"numeric_value":   map[string]any{"type": "number"},
		"unit":            map[string]any{"type": "string"},
		"confidence":      map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"source_pages":    map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		"source_chunks":   map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
		"reasoning":       map[string]any{"type": "string"},
	},
}

type extractionToolOutput struct {
	ExtractedValue string   `json:"extracted_value"`
	NumericValue   *float64 `json:"numeric_value"`
	Unit           string   `json:"unit"`
	Confidence     float64  `json:"confidence"`
	SourcePages    []int    `json:"source_pages"`
	SourceChunks   []int    `json:"source_chunks"`
	Reasoning      string   `json:"reasoning"`
}

// Extract invokes the structured-output chain for one indicator. Temperature
// is per-request since the extraction worker passes its configured value.
func (c *GenerativeClient) Extract(ctx context.Context, req interfaces.ExtractionRequest) (*interfaces.ExtractionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := buildExtractionPrompt(req)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   1024,
		Temperature: anthropic.Float(float64(req.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Tools: []anthropic.ToolUnionParam{
			{OfTool: &anthropic.ToolParam{Name: "record_indicator", InputSchema: extractionToolSchema}},
		},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: "record_indicator"},
		},
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, common.Wrap(common.Transient, "llm: extraction call", err)
	}

	for _, block := range resp.Content {
		if block.Type != anthropic.ContentBlockTypeToolUse {
			continue
		}
		var out extractionToolOutput
		if err := json.Unmarshal(block.Input, &out); err != nil {
			return nil, common.Wrap(common.PermanentInput, "llm: parse tool output", err)
		}
		if out.Confidence < 0 || out.Confidence > 1 {
			return nil, common.Wrap(common.PermanentInput, "llm: confidence out of range", fmt.Errorf("confidence=%f", out.Confidence))
		}
		return &interfaces.ExtractionResult{
			IndicatorCode:  req.IndicatorCode,
			ExtractedValue: out.ExtractedValue,
			NumericValue:   out.NumericValue,
			Unit:           out.Unit,
			Confidence:     out.Confidence,
			SourcePages:    out.SourcePages,
			SourceChunks:   out.SourceChunks,
			Reasoning:      out.Reasoning,
		}, nil
	}

	return nil, common.Wrap(common.PermanentInput, "llm: no tool_use block in response", fmt.Errorf("empty structured output"))
}

func buildExtractionPrompt(req interfaces.ExtractionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Indicator code: %s\nParameter: %s\nUnit: %s\nPillar: %s\nDescription: %s\n\n",
		req.IndicatorCode, req.ParameterName, req.Unit, req.Pillar, req.Description)
	b.WriteString("Retrieved context (each chunk annotated with its source page and chunk index):\n")
	b.WriteString(req.Context)
	b.WriteString("\n\nExtract this indicator's value from the context above using the record_indicator tool. ")
	b.WriteString("If the value cannot be determined from the context, set confidence to 0 and extracted_value to \"not found\".")
	return b.String()
}
