package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"formbuilder/internal/model"
)

// ReadSchemaFile reads a form schema from a JSON file.
func ReadSchemaFile(path string) (model.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Schema{}, err
	}
	defer f.Close()
	return DecodeSchema(f)
}

func DecodeSchema(r io.Reader) (model.Schema, error) {
	var sc model.Schema
	if err := json.NewDecoder(r).Decode(&sc); err != nil {
		return model.Schema{}, fmt.Errorf("decode schema: %w", err)
	}
	if sc.Pages == nil {
		sc.Pages = []model.Page{}
	}
	return sc, nil
}

// WriteSchemaFile writes sc as indented JSON, replacing path atomically.
func WriteSchemaFile(path string, sc model.Schema) error {
	b, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, b, 0o644)
}
