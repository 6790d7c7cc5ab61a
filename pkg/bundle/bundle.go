package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// =============================================================================
// Bundle Serialization API
// =============================================================================

// Marshal converts a Bundle to indented JSON bytes.
// Atoms and relations keep their emission order for deterministic output.
func Marshal(b Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(b, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a Bundle as JSON to an io.Writer.
// Use Marshal for in-memory serialization.
func Write(b Bundle, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON bundle from an io.Reader.
// Pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("decode: %w", err)
	}
	return b, nil
}

// Unmarshal deserializes JSON bytes to a Bundle.
func Unmarshal(data []byte) (Bundle, error) {
	return Read(bytes.NewReader(data))
}
