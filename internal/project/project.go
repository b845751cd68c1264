// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tubesheet-planner/internal/hole"
	"tubesheet-planner/internal/planner"
)

// Extension is the project file extension.
const Extension = ".tsproj"

// File represents a tube sheet inspection project file (.tsproj).
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	// Hole list (relative to project file)
	HolesPath string `json:"holes,omitempty"`

	// Planning
	Strategy planner.Strategy `json:"strategy"`
	Resolver hole.Options     `json:"resolver"`

	// Inspection sessions database (relative to project file)
	SessionsPath string `json:"sessions,omitempty"`
	ActiveRun    string `json:"active_run,omitempty"`

	// Presentation only; never consulted when planning.
	Display DisplaySettings `json:"display"`
}

// DisplaySettings holds how paths are drawn for the operator.
type DisplaySettings struct {
	LineColor  string  `json:"line_color,omitempty"` // "#rrggbb"
	LineWidth  int     `json:"line_width,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	Scale      float64 `json:"scale,omitempty"` // Image pixels per sheet unit
	ShowLabels bool    `json:"show_labels"`
}

// New creates a new project file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Strategy: planner.DefaultStrategy,
		Resolver: hole.DefaultOptions(),
		Display: DisplaySettings{
			LineColor:  "#00c8ff",
			LineWidth:  2,
			FontSize:   13,
			Scale:      4,
			ShowLabels: true,
		},
	}
}

// Load loads a project from a .tsproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	proj := New("")
	if err := json.Unmarshal(data, proj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := proj.Resolver.Validate(); err != nil {
		return nil, fmt.Errorf("%s: resolver: %w", path, err)
	}

	return proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetHolesPath sets the hole list path (relative to project).
func (p *File) SetHolesPath(projectPath, holesPath string) {
	p.HolesPath = relativeTo(projectPath, holesPath)
	p.Modified = time.Now()
}

// GetHolesPath returns the absolute path to the hole list.
func (p *File) GetHolesPath(projectPath string) string {
	if p.HolesPath == "" {
		return ""
	}
	return resolveFrom(projectPath, p.HolesPath)
}

// GetSessionsPath returns the absolute path to the sessions database.
func (p *File) GetSessionsPath(projectPath string) string {
	if p.SessionsPath == "" {
		// Default: project_name_sessions.db
		base := projectPath[:len(projectPath)-len(filepath.Ext(projectPath))]
		return base + "_sessions.db"
	}
	return resolveFrom(projectPath, p.SessionsPath)
}

func relativeTo(projectPath, path string) string {
	rel, err := filepath.Rel(filepath.Dir(projectPath), path)
	if err != nil {
		return path
	}
	return rel
}

func resolveFrom(projectPath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(projectPath), path)
}
