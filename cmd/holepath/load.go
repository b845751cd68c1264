package main

import (
	"errors"
	"fmt"

	"tubesheet-planner/internal/app"
	"tubesheet-planner/internal/hole"
	"tubesheet-planner/internal/holeio"
	"tubesheet-planner/internal/planner"
	"tubesheet-planner/internal/project"
)

// input is everything a command needs to plan a hole list.
type input struct {
	holesPath string
	project   *project.File
	state     *app.State
}

// loadInput resolves the hole list from the argument or the project file,
// applies --strategy over the project setting and plans the path.
func loadInput(args []string) (*input, error) {
	in := &input{project: project.New("")}

	if projectPath != "" {
		p, err := project.Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("load project: %w", err)
		}
		in.project = p
		in.holesPath = p.GetHolesPath(projectPath)
	}
	if len(args) > 0 {
		in.holesPath = args[0]
	}
	if in.holesPath == "" {
		return nil, errors.New("no hole file given (pass a path or --project)")
	}

	strategy := in.project.Strategy
	if strategyName != "" {
		s, err := planner.ParseStrategy(strategyName)
		if err != nil {
			return nil, err
		}
		strategy = s
	}

	resolver, err := hole.NewResolver(in.project.Resolver)
	if err != nil {
		return nil, err
	}

	records, err := holeio.Load(in.holesPath)
	if err != nil {
		return nil, fmt.Errorf("load holes: %w", err)
	}

	in.state = app.NewState(resolver, strategy)
	if err := in.state.Load(records); err != nil {
		return nil, err
	}
	return in, nil
}

// sessionsPath returns the --db value, falling back to the project's database.
func (in *input) sessionsPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if projectPath != "" {
		return in.project.GetSessionsPath(projectPath)
	}
	return ""
}
