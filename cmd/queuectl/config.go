package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/TamannaDash/queuectl/config"
	"github.com/TamannaDash/queuectl/store"
)

func runConfigGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("config get", flag.ContinueOnError)
	dbPath := dbFlag(fs)
	key := fs.String("key", "", "print only this key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	cfg := config.New(s)

	if *key != "" {
		v, err := cfg.Get(ctx, config.Key(*key))
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	}

	all, err := cfg.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, k := range config.Keys() {
		fmt.Printf("%s=%s\n", k, all[k])
	}
	return nil
}

func runConfigSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("config set requires <key> <value>")
	}
	key, value := args[0], args[1]

	fs := flag.NewFlagSet("config set", flag.ContinueOnError)
	dbPath := dbFlag(fs)
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}

	s, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	cfg := config.New(s)

	if err := cfg.Set(ctx, config.Key(key), value); err != nil {
		return err
	}
	fmt.Printf("%s=%s\n", key, value)
	return nil
}
