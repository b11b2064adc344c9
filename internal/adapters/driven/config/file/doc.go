// Package file provides file-based configuration and prompt storage.
// Configuration lives in a TOML file, prompts in editable text files,
// both under the lore config directory.
package file
