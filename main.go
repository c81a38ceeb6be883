// Command rushhour solves and serves Rush Hour sliding-block puzzles.
//
// Subcommands:
//
//	list        list built-in and on-disk boards
//	show        draw a board
//	solve       find a shortest solution and write it as CSV
//	replay      step a saved solution on its board
//	solve-all   solve every board in parallel
//	serve       run the REST API, WebSocket hub and /mcp endpoint (default)
//	mcp         run an MCP stdio server, starting an internal API if none is running
//
// Flags can also be set through the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Rush Hour Solver"
)

// defaultBoardDir holds the CSV boards; the same files are embedded as built-ins
const defaultBoardDir = "gameboards"

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "rushhour",
		Usage:   "solve Rush Hour puzzles with breadth-first search",
		Version: Version,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "board-dir",
				Usage:   "directory containing board CSV files",
				Value:   defaultBoardDir,
				Sources: cli.EnvVars("BOARD_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		}, serverFlags()...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list available boards",
				Action: runList,
			},
			{
				Name:      "show",
				Usage:     "draw a board",
				ArgsUsage: "<board>",
				Action:    runShow,
			},
			{
				Name:      "solve",
				Usage:     "find a shortest solution for a board",
				ArgsUsage: "<board>",
				Flags: []cli.Flag{
					maxDepthFlag(),
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "where to write the solution CSV",
						Value:   solver.DefaultSolutionPath,
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "do not log per-depth progress",
					},
				},
				Action: runSolve,
			},
			{
				Name:      "replay",
				Usage:     "apply a saved solution to its board, drawing each step",
				ArgsUsage: "<board> [solution.csv]",
				Action:    runReplay,
			},
			{
				Name:  "solve-all",
				Usage: "solve every available board",
				Flags: []cli.Flag{
					maxDepthFlag(),
					&cli.IntFlag{
						Name:  "jobs",
						Usage: "boards solved in parallel",
						Value: 2,
					},
				},
				Action: runSolveAll,
			},
			{
				Name:   "serve",
				Usage:  "run the HTTP server with REST API, WebSocket and MCP endpoint",
				Action: runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp"},
				Usage:   "run an MCP stdio server",
				Action:  runStdioMCP,
			},
		},
	}
}

func maxDepthFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "max-depth",
		Usage: "stop searching after this many moves (0 = unlimited)",
	}
}

// serverFlags configure serve and mcp; subcommands inherit them from the root
func serverFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "HTTP server port",
			Value:   8080,
			Sources: cli.EnvVars("PORT"),
		},
		&cli.StringFlag{
			Name:    "host",
			Usage:   "HTTP server host",
			Value:   "localhost",
			Sources: cli.EnvVars("HOST"),
		},
		&cli.StringFlag{
			Name:    "sessions-dir",
			Usage:   "directory for persisted sessions",
			Value:   "sessions",
			Sources: cli.EnvVars("SESSIONS_DIR"),
		},
		&cli.BoolFlag{
			Name:    "ngrok",
			Usage:   "expose the server through an ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    "ngrok-auth",
			Usage:   "ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "ngrok-domain",
			Usage:   "custom ngrok domain (optional)",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
	}
}

// firstArg returns the first positional argument or an error naming it
func firstArg(cmd *cli.Command, name string) (string, error) {
	if cmd.Args().Len() == 0 {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return cmd.Args().First(), nil
}
