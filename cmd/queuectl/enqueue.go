package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"
)

type enqueueSpec struct {
	ID         *string `json:"id,omitempty"`
	Command    string  `json:"command"`
	MaxRetries *uint32 `json:"max_retries,omitempty"`
}

// parseEnqueueSpec accepts either a bare command string or a JSON
// object {"id"?, "command", "max_retries"?}.
func parseEnqueueSpec(raw string) (id, command string, maxRetries *uint32, err error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return "", raw, nil, nil
	}
	var s enqueueSpec
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return "", "", nil, fmt.Errorf("invalid JSON spec: %w", err)
	}
	if s.Command == "" {
		return "", "", nil, errors.New("spec is missing required \"command\"")
	}
	if s.ID != nil {
		id = *s.ID
	}
	return id, s.Command, s.MaxRetries, nil
}

func runEnqueue(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("enqueue requires a <spec> argument")
	}
	raw := args[0]

	fs := flag.NewFlagSet("enqueue", flag.ContinueOnError)
	dbPath := dbFlag(fs)
	cliMaxRetries := fs.Int("max-retries", -1, "override the retry budget for this job")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	id, command, specMaxRetries, err := parseEnqueueSpec(raw)
	if err != nil {
		return err
	}
	if command == "" {
		return errors.New("spec is missing required \"command\"")
	}

	var maxRetries *uint32
	switch {
	case *cliMaxRetries >= 0:
		v := uint32(*cliMaxRetries)
		maxRetries = &v
	case specMaxRetries != nil:
		maxRetries = specMaxRetries
	}

	s, q, err := openQueue(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	jb, err := q.Enqueue(ctx, command, id, maxRetries)
	if err != nil {
		return err
	}
	fmt.Println(jb.Id)
	return nil
}
