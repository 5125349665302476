// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads category tables from external configuration files.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/walteh/sortrc/pkg/category"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🎯 Load reads a category table from the given path. The format is
// determined by the file extension:
// - .json for JSON (an object of category name -> extension list)
// - .yaml or .yml for YAML (same shape)
// - .hcl for HCL (category blocks)
// Key order in the document becomes table order, so duplicate extensions
// resolve to the first category that declares them.
func Load(ctx context.Context, path string) (category.Table, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading category table")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var table category.Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		table, err = parseJSON(data)
	case ".yaml", ".yml":
		table, err = parseYAML(data)
	case ".hcl":
		table, err = parseHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := validate(ctx, table); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return table, nil
}

// 🛟 LoadOrDefault is the fail-soft entry point used by the CLI: a missing
// or unparseable config file leaves the built-in table in effect, logged
// as a warning rather than failing the run. An empty path skips loading
// entirely.
func LoadOrDefault(ctx context.Context, path string) category.Table {
	if path == "" {
		return category.DefaultTable()
	}
	table, err := Load(ctx, path)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).
			Msg("could not load category config, using built-in table")
		return category.DefaultTable()
	}
	zerolog.Ctx(ctx).Info().Str("path", path).Int("categories", len(table)).
		Msg("loaded category config")
	return table
}

// 📝 parseJSON walks the JSON tokens by hand so that object key order is
// preserved; a decode into a map would scramble the table.
func parseJSON(data []byte) (category.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("top-level JSON value must be an object")
	}

	var table category.Table
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Errorf("parsing JSON: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, errors.Errorf("unexpected JSON key token %v", keyTok)
		}
		var exts []string
		if err := dec.Decode(&exts); err != nil {
			return nil, errors.Errorf("parsing extensions for category %q: %w", name, err)
		}
		table = append(table, category.Entry{Name: name, Extensions: exts})
	}
	return table, nil
}

// 📝 parseYAML decodes via yaml.Node for the same ordering guarantee.
func parseYAML(data []byte) (category.Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, errors.New("empty YAML document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("top-level YAML value must be a mapping")
	}

	var table category.Table
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var exts []string
		if err := val.Decode(&exts); err != nil {
			return nil, errors.Errorf("parsing extensions for category %q: %w", key.Value, err)
		}
		table = append(table, category.Entry{Name: key.Value, Extensions: exts})
	}
	return table, nil
}

// hclTable is the gohcl decode target for .hcl configs:
//
//	category "Images" {
//	  extensions = [".jpg", ".png"]
//	}
type hclTable struct {
	Categories []hclCategory `hcl:"category,block"`
}

type hclCategory struct {
	Name       string   `hcl:"name,label"`
	Extensions []string `hcl:"extensions"`
}

func parseHCL(data []byte, filename string) (category.Table, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var out hclTable
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &out)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	table := make(category.Table, 0, len(out.Categories))
	for _, c := range out.Categories {
		table = append(table, category.Entry{Name: c.Name, Extensions: c.Extensions})
	}
	return table, nil
}

// 🔍 validate rejects structurally broken tables. Duplicate extensions are
// legal (first category wins at resolve time) but worth a warning.
func validate(ctx context.Context, table category.Table) error {
	if len(table) == 0 {
		return errors.New("config defines no categories")
	}

	seen := map[string]string{}
	for _, entry := range table {
		if entry.Name == "" {
			return errors.New("category with empty name")
		}
		if len(entry.Extensions) == 0 {
			return errors.Errorf("category %q has no extensions", entry.Name)
		}
		for _, ext := range entry.Extensions {
			norm := category.Normalize(ext)
			if norm == "" {
				return errors.Errorf("category %q has an empty extension", entry.Name)
			}
			if owner, dup := seen[norm]; dup {
				zerolog.Ctx(ctx).Warn().
					Str("extension", norm).
					Str("category", owner).
					Str("ignored_in", entry.Name).
					Msg("duplicate extension in config, first category wins")
				continue
			}
			seen[norm] = entry.Name
		}
	}
	return nil
}
