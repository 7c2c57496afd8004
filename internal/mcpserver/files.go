package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// The pass-through file tools spec.md §6 lists alongside the refactor
// intents: thin wrappers a caller uses to read a file's current content
// before choosing a source locator, or to apply a plan's edits once
// reviewed. They bypass the planner entirely.

type readFileParams struct {
	Path string `json:"path"`
}

type readFileResult struct {
	Content string `json:"content"`
}

func handleReadFile(ctx context.Context, raw json.RawMessage) (any, error) {
	var params readFileParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(params.Path)
	if err != nil {
		return nil, err
	}
	return &readFileResult{Content: string(content)}, nil
}

type writeFileParams struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func handleWriteFile(ctx context.Context, raw json.RawMessage) (any, error) {
	var params writeFileParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	if err := os.WriteFile(params.Path, []byte(params.Content), 0o644); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

type createFileParams struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
}

func handleCreateFile(ctx context.Context, raw json.RawMessage) (any, error) {
	var params createFileParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(params.Path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(params.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.WriteString(params.Content); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

type deleteFileParams struct {
	Path string `json:"path"`
}

func handleDeleteFile(ctx context.Context, raw json.RawMessage) (any, error) {
	var params deleteFileParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	if err := os.Remove(params.Path); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

type listFilesParams struct {
	Dir string `json:"dir"`
}

type listFilesResult struct {
	Files []string `json:"files"`
}

func handleListFiles(ctx context.Context, raw json.RawMessage) (any, error) {
	var params listFilesParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(params.Dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		files = append(files, filepath.Join(params.Dir, e.Name()))
	}
	return &listFilesResult{Files: files}, nil
}
