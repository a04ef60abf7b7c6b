// Package config loads and validates flagprune's two configuration
// surfaces: FlagConfig (the flag/pattern mapping the core engine consumes)
// and ToolSettings (ambient CLI defaults, never merged into FlagConfig).
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/flagprune/internal/flagerrors"
	"github.com/standardbeagle/flagprune/internal/types"
)

// rawConfig is the "nearly-JSON mapping dialect" (KDL) or strict-JSON
// decoded shape, before it is validated and shaped into *types.FlagConfig.
// Unknown top-level keys and unknown per-flag keys are silently ignored by
// `encoding/json`'s default decode behavior.
type rawConfig struct {
	Version  string                  `json:"version"`
	Patterns rawPatterns             `json:"patterns"`
	Flags    map[string]rawFlagEntry `json:"flags"`
	Settings rawSettings             `json:"settings"`
}

type rawPatterns struct {
	Methods []string `json:"methods"`
	Classes []string `json:"classes"`
}

type rawFlagEntry struct {
	Value            *bool    `json:"value"`
	RemoveDefinition *bool    `json:"remove_definition"`
	Aliases          []string `json:"aliases"`
	Description      string   `json:"description"`
	Ticket           string   `json:"ticket"`
	Owner            string   `json:"owner"`
	Expire           string   `json:"expire"` // ISO date, e.g. "2026-01-01"
}

type rawSettings struct {
	PreserveComments  bool `json:"preserve_comments"`
	RemoveEmptyBlocks bool `json:"remove_empty_blocks"`
	FormatOutput      bool `json:"format_output"`
}

// LoadConfig accepts either strict JSON or the KDL "nearly-JSON mapping
// dialect" (chosen by file extension: ".kdl" parses as KDL, anything else as
// JSON), validates the result, and shapes it into an immutable
// *types.FlagConfig. Expired flags never fail the load; they are reported
// as warnings.
func LoadConfig(path string) (*types.FlagConfig, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, flagerrors.NewConfigInvalidError("reading config file", err)
	}

	var raw rawConfig
	if filepath.Ext(path) == ".kdl" {
		raw, err = decodeKDL(data)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, nil, flagerrors.NewConfigInvalidError("parsing config file", err)
	}

	return shapeAndValidate(&raw)
}

// shapeAndValidate converts the decoded mapping into *types.FlagConfig and
// runs the validations load_config is required to perform: at least one
// flag, no empty flag names, aliases disjoint across flags. Expired flags
// emit warnings but never fail validation.
func shapeAndValidate(raw *rawConfig) (*types.FlagConfig, []string, error) {
	if len(raw.Flags) == 0 {
		return nil, nil, flagerrors.NewConfigInvalidError("at least one flag must be configured", nil)
	}

	cfg := &types.FlagConfig{
		Version:        raw.Version,
		PatternMethods: raw.Patterns.Methods,
		PatternClasses: raw.Patterns.Classes,
		Flags:          make(map[string]*types.FlagDefinition, len(raw.Flags)),
		Settings: types.Settings{
			PreserveComments:  raw.Settings.PreserveComments,
			RemoveEmptyBlocks: raw.Settings.RemoveEmptyBlocks,
			FormatOutput:      raw.Settings.FormatOutput,
		},
	}

	seenNames := make(map[string]string) // name/alias -> owning canonical flag
	var warnings []string

	for name, entry := range raw.Flags {
		if name == "" {
			return nil, nil, flagerrors.NewConfigInvalidError("flag name cannot be empty", nil)
		}
		if entry.Value == nil {
			return nil, nil, flagerrors.NewConfigInvalidError(
				fmt.Sprintf("flag %q: value is required", name), nil)
		}

		def := &types.FlagDefinition{
			Name:             name,
			Value:            *entry.Value,
			RemoveDefinition: true,
			Aliases:          make(map[string]struct{}, len(entry.Aliases)),
			Description:      entry.Description,
			Ticket:           entry.Ticket,
			Owner:            entry.Owner,
		}
		if entry.RemoveDefinition != nil {
			def.RemoveDefinition = *entry.RemoveDefinition
		}

		if owner, dup := seenNames[name]; dup {
			return nil, nil, flagerrors.NewConfigInvalidError(
				fmt.Sprintf("name %q is used by both %q and %q", name, owner, name), nil)
		}
		seenNames[name] = name

		for _, alias := range entry.Aliases {
			if alias == "" {
				continue
			}
			if owner, dup := seenNames[alias]; dup {
				return nil, nil, flagerrors.NewConfigInvalidError(
					fmt.Sprintf("alias %q is used by both %q and %q", alias, owner, name), nil)
			}
			seenNames[alias] = name
			def.Aliases[alias] = struct{}{}
		}

		if entry.Expire != "" {
			expire, err := time.Parse("2006-01-02", entry.Expire)
			if err != nil {
				return nil, nil, flagerrors.NewConfigInvalidError(
					fmt.Sprintf("flag %q: invalid expire date %q", name, entry.Expire), err)
			}
			def.Expire = &expire
			if def.IsExpired(time.Now()) {
				warnings = append(warnings, fmt.Sprintf("flag %q expired on %s", name, entry.Expire))
			}
		}

		cfg.Flags[name] = def
	}

	return cfg, warnings, nil
}

// decodeKDL parses the KDL "nearly-JSON mapping dialect" into rawConfig.
// KDL's document model is a list of nodes with arguments and properties, so
// this walks a shape like:
//
//	version "1"
//	patterns {
//	    methods "Class.method" "*.method"
//	    classes "FeatureFlagService"
//	}
//	flags {
//	    new_feature value=true "legacy_new_feature" {
//	        description "short-lived rollout flag"
//	    }
//	}
//	settings {
//	    format_output true
//	}
func decodeKDL(data []byte) (rawConfig, error) {
	doc, err := kdl.Parse(bytes.NewReader(data))
	if err != nil {
		return rawConfig{}, err
	}

	var raw rawConfig
	raw.Flags = make(map[string]rawFlagEntry)

	for _, node := range doc.Nodes {
		switch nodeName(node) {
		case "version":
			if v, ok := firstStringArg(node); ok {
				raw.Version = v
			}
		case "patterns":
			raw.Patterns = decodeKDLPatterns(node)
		case "flags":
			for _, flagNode := range node.Children {
				raw.Flags[nodeName(flagNode)] = decodeKDLFlagEntry(flagNode)
			}
		case "settings":
			raw.Settings = decodeKDLSettings(node)
		}
	}
	return raw, nil
}

func decodeKDLPatterns(node *document.Node) rawPatterns {
	var p rawPatterns
	for _, child := range node.Children {
		switch nodeName(child) {
		case "methods":
			p.Methods = collectStringArgs(child)
		case "classes":
			p.Classes = collectStringArgs(child)
		}
	}
	return p
}

// decodeKDLFlagEntry reads one `flags { my_flag value=true "alias" ... }`
// node: the boolean/string attributes as KDL properties (key=value), the
// alias list either as bare arguments or a nested `aliases { ... }` block.
func decodeKDLFlagEntry(node *document.Node) rawFlagEntry {
	var entry rawFlagEntry
	if v, ok := propBool(node, "value"); ok {
		entry.Value = &v
	}
	if v, ok := propBool(node, "remove_definition"); ok {
		entry.RemoveDefinition = &v
	}
	entry.Description, _ = propString(node, "description")
	entry.Ticket, _ = propString(node, "ticket")
	entry.Owner, _ = propString(node, "owner")
	entry.Expire, _ = propString(node, "expire")
	for _, a := range node.Arguments {
		if s, ok := a.Value.(string); ok {
			entry.Aliases = append(entry.Aliases, s)
		}
	}

	for _, child := range node.Children {
		switch nodeName(child) {
		case "description":
			if v, ok := firstStringArg(child); ok {
				entry.Description = v
			}
		case "ticket":
			if v, ok := firstStringArg(child); ok {
				entry.Ticket = v
			}
		case "owner":
			if v, ok := firstStringArg(child); ok {
				entry.Owner = v
			}
		case "expire":
			if v, ok := firstStringArg(child); ok {
				entry.Expire = v
			}
		case "aliases":
			entry.Aliases = append(entry.Aliases, collectStringArgs(child)...)
		}
	}
	return entry
}

func decodeKDLSettings(node *document.Node) rawSettings {
	var s rawSettings
	for _, child := range node.Children {
		switch nodeName(child) {
		case "preserve_comments":
			s.PreserveComments, _ = firstBoolArg(child)
		case "remove_empty_blocks":
			s.RemoveEmptyBlocks, _ = firstBoolArg(child)
		case "format_output":
			s.FormatOutput, _ = firstBoolArg(child)
		}
	}
	return s
}

// nodeName, firstStringArg, firstBoolArg, collectStringArgs and the
// propString/propBool pair below are small traversal helpers: kdl-go's
// document model exposes no convenience accessors of its own, so callers
// have to pull named arguments and properties off each node by hand.
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	b, ok := n.Arguments[0].Value.(bool)
	return b, ok
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func propString(n *document.Node, key string) (string, bool) {
	if n.Properties == nil {
		return "", false
	}
	v, ok := n.Properties[key]
	if !ok {
		return "", false
	}
	s, ok := v.Value.(string)
	return s, ok
}

func propBool(n *document.Node, key string) (bool, bool) {
	if n.Properties == nil {
		return false, false
	}
	v, ok := n.Properties[key]
	if !ok {
		return false, false
	}
	b, ok := v.Value.(bool)
	return b, ok
}
