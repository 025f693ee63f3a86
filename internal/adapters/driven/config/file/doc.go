// Package file keeps the engine's mutable state on the local
// filesystem under ~/.chanscout: a TOML settings file (ConfigStore)
// and user-editable AI prompt templates (PromptStore).
package file
