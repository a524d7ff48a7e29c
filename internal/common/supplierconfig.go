package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Text extraction methods accepted in the configuration document.
// MethodOther has no dedicated backend and is handled like MethodOCR.
const (
	MethodNative = "native"
	MethodOCR    = "ocr"
	MethodOther  = "other"
)

// SupplierEntry is one row of the supplier keyword table. The JSON form is
// keyword -> [displayName, extractorName, tesseractConfig], index-addressed.
type SupplierEntry struct {
	Keyword   string
	Name      string
	Extractor string
	Tesseract string
}

// SupplierTable is the ordered supplier keyword table. Order matters: the
// resolver returns the first entry whose keyword occurs in the text, so the
// decoder must preserve the configuration order of the JSON object keys.
type SupplierTable []SupplierEntry

func (t *SupplierTable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("supplier_keywords: expected object, got %v", tok)
	}
	var table SupplierTable
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		keyword, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("supplier_keywords: non-string key %v", keyTok)
		}
		var vals []string
		if err := dec.Decode(&vals); err != nil {
			return fmt.Errorf("supplier_keywords[%s]: %w", keyword, err)
		}
		if len(vals) != 3 {
			return fmt.Errorf("supplier_keywords[%s]: want [name, extractor, tesseract], got %d values", keyword, len(vals))
		}
		table = append(table, SupplierEntry{
			Keyword:   keyword,
			Name:      vals[0],
			Extractor: vals[1],
			Tesseract: vals[2],
		})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = table
	return nil
}

func (t SupplierTable) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range t {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(e.Keyword)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal([]string{e.Name, e.Extractor, e.Tesseract})
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// RoutingFolders names the destination folders for the renamer/mover.
// Invoice and Correspondence are keyed by recipient name.
type RoutingFolders struct {
	Scan           string            `json:"scan_folder"`
	Unknown        string            `json:"unknown_folder"`
	Invoice        map[string]string `json:"invoice_folders"`
	Correspondence map[string]string `json:"correspondence_folders"`
}

// SupplierConfig is the configuration document driving supplier resolution,
// field extraction and routing. Loaded once at startup, then passed around
// by reference and never mutated.
type SupplierConfig struct {
	Suppliers       SupplierTable  `json:"supplier_keywords"`
	LegalForms      []string       `json:"companies_legal_forms"`
	ExcludeList     []string       `json:"exclude_companies"`
	TextExtraction  string         `json:"text_extraction_method"`
	TesseractConfig string         `json:"tesseract_config"`
	Routing         RoutingFolders `json:"routing"`
}

// buildConfigSchema returns the JSON-Schema the configuration document must
// satisfy before any of it is used.
func buildConfigSchema() map[string]any {
	folderMap := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"supplier_keywords": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 3,
					"maxItems": 3,
				},
			},
			"companies_legal_forms": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
			"exclude_companies": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"text_extraction_method": map[string]any{
				"type": "string",
				"enum": []string{MethodNative, MethodOCR, MethodOther},
			},
			"tesseract_config": map[string]any{"type": "string"},
			"routing": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"scan_folder":            map[string]any{"type": "string"},
					"unknown_folder":         map[string]any{"type": "string"},
					"invoice_folders":        folderMap,
					"correspondence_folders": folderMap,
				},
			},
		},
		"required": []string{"supplier_keywords", "companies_legal_forms", "text_extraction_method"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ParseSupplierConfig validates and decodes a configuration document.
func ParseSupplierConfig(data []byte) (*SupplierConfig, error) {
	if err := ValidateJSONAgainstSchema(buildConfigSchema(), data); err != nil {
		return nil, NewAppError("CONFIG_ERROR", "supplier config rejected by schema", err)
	}
	var cfg SupplierConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, NewAppError("CONFIG_ERROR", "decode supplier config", err)
	}
	return &cfg, nil
}

// LoadSupplierConfig reads and parses the configuration document at path.
func LoadSupplierConfig(path string) (*SupplierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewAppError("CONFIG_ERROR", fmt.Sprintf("read %s", path), err)
	}
	return ParseSupplierConfig(data)
}
