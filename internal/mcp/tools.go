package mcp

import "github.com/vijay-prabhu/voiceprofile/internal/transcribe"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "score_text",
		Description: "Score a transcript against the interest taxonomy. Returns category percentages, highest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Transcript or any free text",
				},
				"verbose": map[string]interface{}{
					"type":        "boolean",
					"description": "Include matched keywords and a confidence label per category (default: false)",
				},
			},
			"required": []string{"text"},
		},
	},
	{
		Name:        "build_profile",
		Description: "Build a personality profile (core interests, social style, activity preference, suggestions) from category percentages.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"scores": map[string]interface{}{
					"type":                 "object",
					"description":          "Category name to percentage, e.g. {\"Food\": 70, \"Sports/Fitness\": 30}",
					"additionalProperties": map[string]interface{}{"type": "number"},
				},
			},
			"required": []string{"scores"},
		},
	},
	{
		Name:        "analyze_text",
		Description: "Score text and build a profile from it in one step.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Transcript or any free text",
				},
			},
			"required": []string{"text"},
		},
	},
	{
		Name:        "analyze_audio_file",
		Description: "Transcribe a local audio file, then score it and build a profile.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to an mp3, wav, m4a, aac, flac, ogg or mp4 file",
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "Spoken language code, e.g. 'en'. Omit to auto-detect.",
				},
				"model_size": map[string]interface{}{
					"type":        "string",
					"enum":        transcribe.ModelSizes,
					"description": "Whisper model size (default from config)",
				},
			},
			"required": []string{"path"},
		},
	},
}
