// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MKhiriev/go-bookmarks/internal/adapter"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/models"
)

type command struct {
	usage string
	args  int
	run   func(ctx context.Context, args []string) (any, error)

	// issuesTokens marks commands whose own output already carries tokens.
	issuesTokens bool
}

type App struct {
	adapter  adapter.ServerAdapter
	out      io.Writer
	commands map[string]command

	logger *logger.Logger
}

// tokensOutput is printed after commands that change the stored tokens.
type tokensOutput struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// NewApp creates a client that talks to the server through serverAdapter
// and prints results to out.
func NewApp(serverAdapter adapter.ServerAdapter, out io.Writer, logger *logger.Logger) *App {
	a := &App{adapter: serverAdapter, out: out, logger: logger}

	a.commands = map[string]command{
		"register": {
			usage: "register <username> <email> <password>",
			args:  3,
			run: func(ctx context.Context, args []string) (any, error) {
				return a.adapter.Register(ctx, models.RegisterRequest{Username: args[0], Email: args[1], Password: args[2]})
			},
			issuesTokens: true,
		},
		"login": {
			usage: "login <username> <password>",
			args:  2,
			run: func(ctx context.Context, args []string) (any, error) {
				return a.adapter.Login(ctx, models.LoginRequest{Username: args[0], Password: args[1]})
			},
			issuesTokens: true,
		},
		"refresh": {
			usage: "refresh",
			run: func(ctx context.Context, _ []string) (any, error) {
				return a.adapter.Refresh(ctx)
			},
			issuesTokens: true,
		},
		"logout": {
			usage: "logout",
			run: func(ctx context.Context, _ []string) (any, error) {
				return nil, a.adapter.Logout(ctx)
			},
		},
		"profile": {
			usage: "profile",
			run: func(ctx context.Context, _ []string) (any, error) {
				return a.adapter.Profile(ctx)
			},
		},
		"update-email": {
			usage: "update-email <email>",
			args:  1,
			run: func(ctx context.Context, args []string) (any, error) {
				return a.adapter.UpdateEmail(ctx, args[0])
			},
		},
		"change-password": {
			usage: "change-password <current> <new>",
			args:  2,
			run: func(ctx context.Context, args []string) (any, error) {
				return nil, a.adapter.ChangePassword(ctx, args[0], args[1])
			},
		},
		"deactivate": {
			usage: "deactivate",
			run: func(ctx context.Context, _ []string) (any, error) {
				return nil, a.adapter.Deactivate(ctx)
			},
		},
		"health": {
			usage: "health",
			run: func(ctx context.Context, _ []string) (any, error) {
				return a.adapter.Health(ctx)
			},
		},
	}

	return a
}

// Run executes args[0] with the remaining args. A refreshed access token is
// printed after the command output so it can be reused.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: <command> [args]; commands: %s", ErrUsage, strings.Join(a.commandNames(), ", "))
	}

	name, rest := args[0], args[1:]
	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	if len(rest) != cmd.args {
		return fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
	}

	accessBefore, _ := a.adapter.Tokens()

	result, err := cmd.run(ctx, rest)
	if err != nil {
		a.logger.Debug().Err(err).Str("command", name).Msg("command failed")
		return fmt.Errorf("%s: %w", name, err)
	}

	if result != nil {
		if err = a.print(result); err != nil {
			return err
		}
	}

	// protected calls refresh an expired access token transparently
	if accessAfter, refreshAfter := a.adapter.Tokens(); !cmd.issuesTokens && accessAfter != "" && accessAfter != accessBefore {
		return a.print(tokensOutput{AccessToken: accessAfter, RefreshToken: refreshAfter})
	}

	return nil
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("print result: %w", err)
	}
	return nil
}

func (a *App) commandNames() []string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
