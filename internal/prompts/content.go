package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Content block discriminators. Every serialized block carries one of
// these in its "type" field; decoding dispatches on the tag, never on
// the shape of the payload.
const (
	ContentTypeText         = "text"
	ContentTypeResourceLink = "resource_link"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ContentBlock is the tagged union of prompt message content: either
// inline text or a link to an internal resource by name.
type ContentBlock struct {
	Type         string `json:"type"`
	Text         string `json:"text,omitempty"`
	InternalName string `json:"internal_name,omitempty"`
}

// TextContent builds a text block.
func TextContent(text string) ContentBlock {
	return ContentBlock{Type: ContentTypeText, Text: text}
}

// ResourceLinkContent builds a resource-link block.
func ResourceLinkContent(internalName string) ContentBlock {
	return ContentBlock{Type: ContentTypeResourceLink, InternalName: internalName}
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	switch b.Type {
	case ContentTypeText:
		return json.Marshal(struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{Type: b.Type, Text: b.Text})
	case ContentTypeResourceLink:
		return json.Marshal(struct {
			Type         string `json:"type"`
			InternalName string `json:"internal_name"`
		}{Type: b.Type, InternalName: b.InternalName})
	default:
		return nil, fmt.Errorf("unknown content type: %q", b.Type)
	}
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type         string  `json:"type"`
		Text         *string `json:"text"`
		InternalName *string `json:"internal_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case ContentTypeText:
		if raw.Text == nil {
			return fmt.Errorf("text contents must be provided for %q type", ContentTypeText)
		}
		*b = ContentBlock{Type: ContentTypeText, Text: *raw.Text}
		return nil
	case ContentTypeResourceLink:
		if raw.InternalName == nil {
			return fmt.Errorf("internal_name must be provided for %q type", ContentTypeResourceLink)
		}
		*b = ContentBlock{Type: ContentTypeResourceLink, InternalName: *raw.InternalName}
		return nil
	default:
		return fmt.Errorf("unknown content type: %q", raw.Type)
	}
}

// Validate rejects blocks with an unknown tag or an empty payload for
// the tagged variant.
func (b ContentBlock) Validate() error {
	switch b.Type {
	case ContentTypeText:
		if strings.TrimSpace(b.Text) == "" {
			return fmt.Errorf("text block requires text")
		}
		return nil
	case ContentTypeResourceLink:
		if strings.TrimSpace(b.InternalName) == "" {
			return fmt.Errorf("resource_link block requires internal_name")
		}
		return nil
	default:
		return fmt.Errorf("unknown content type: %q", b.Type)
	}
}

// Message is one entry of a prompt's ordered message sequence.
type Message struct {
	Role    string       `json:"role"`
	Content ContentBlock `json:"content"`
}

func (m Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return fmt.Errorf("unknown role: %q", m.Role)
	}
	return m.Content.Validate()
}

// Argument declares an optional prompt argument a caller may supply at
// render time.
type Argument struct {
	Name        string  `json:"name"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Required    *bool   `json:"required,omitempty"`
}

func (a Argument) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("argument requires a name")
	}
	return nil
}
