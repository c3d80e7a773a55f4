// Package codec serializes the item sequence to and from the stored blob.
//
// The blob is a JSON array. Decoding accepts JWCC (comments, trailing commas)
// so a hand-edited data file still loads, and every decoded blob is checked
// against an embedded JSON Schema before it reaches the list.
package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tailscale/hujson"
)

//go:embed items.schema.json
var schemaJSON string

const schemaURL = "items.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat = true
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Encode returns the compact JSON form of items. A nil slice encodes as [].
func Encode(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a stored blob. An empty or null blob yields an empty list.
func Decode(b []byte) ([]model.Item, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Item{}, nil
	}

	std, err := hujson.Standardize(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	var doc any
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	var items []model.Item
	if err := json.Unmarshal(std, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("item %d: duplicate id %q", i, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Validate checks a generic JSON document against the items schema.
func Validate(doc any) error {
	sch, err := compiled()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("schema: %s", firstCause(ve))
		}
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

// firstCause walks to the deepest leaf so the message names the bad field.
func firstCause(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
