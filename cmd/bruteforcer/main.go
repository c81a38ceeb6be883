// Command bruteforcer plays a Rush Hour session over the REST API by random
// walk, resetting and retrying until the target reaches the exit or it runs
// out of attempts. It exercises the server the way an external client would.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/rushhour/game/service"
)

const sessionFile = ".session"

// Options control one bruteforce run
type Options struct {
	MaxMoves    int
	MaxAttempts int
	Delay       time.Duration
	Verbose     bool
}

// Outcome summarizes a run
type Outcome struct {
	Won      bool
	Attempts int
	Moves    int
}

func main() {
	cmd := &cli.Command{
		Name:  "bruteforcer",
		Usage: "play a Rush Hour session by random walk",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "game server URL"},
			&cli.StringFlag{Name: "board", Usage: "board to play (server default when empty)"},
			&cli.StringFlag{Name: "continue", Usage: "resume playing an existing session by ID"},
			&cli.IntFlag{Name: "max-moves", Value: 3000, Usage: "maximum moves per attempt"},
			&cli.IntFlag{Name: "max-attempts", Value: 100, Usage: "maximum attempts before giving up"},
			&cli.IntFlag{Name: "seed", Usage: "random seed (0 = time based)"},
			&cli.DurationFlag{Name: "delay", Usage: "delay between moves"},
			&cli.BoolFlag{Name: "v", Usage: "verbose output"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log.Printf("Connecting to game server at %s", cmd.String("url"))
	client := NewClient(cmd.String("url"))

	if err := openSession(client, cmd.String("continue"), cmd.String("board")); err != nil {
		return err
	}

	seed := uint64(cmd.Int("seed"))
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	outcome, err := play(ctx, client, NewRandomWalkStrategy(seed), Options{
		MaxMoves:    cmd.Int("max-moves"),
		MaxAttempts: cmd.Int("max-attempts"),
		Delay:       cmd.Duration("delay"),
		Verbose:     cmd.Bool("v"),
	})
	if err != nil {
		return err
	}

	log.Printf("Session: %s", client.sessionID)
	if !outcome.Won {
		return cli.Exit(fmt.Sprintf("❌ Failed to win after %d attempts", outcome.Attempts), 1)
	}
	log.Printf("🎉 VICTORY! Solved in attempt %d with %d moves", outcome.Attempts, outcome.Moves)
	return nil
}

// openSession resumes the given or saved session, creating a new one when
// there is none or it has expired
func openSession(client *Client, resume, board string) error {
	if resume == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			resume = string(bytes.TrimSpace(data))
		}
	}

	if resume != "" {
		client.sessionID = resume
		state, err := client.GetState()
		if err == nil {
			log.Printf("🔄 Resumed session %s on %s (%dx%d)", resume, state.BoardName, state.Size, state.Size)
			return nil
		}
		log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
	}

	state, err := client.CreateSession(board)
	if err != nil {
		return err
	}
	log.Printf("✨ Session created: %s on %s (%dx%d)", client.sessionID, state.BoardName, state.Size, state.Size)

	if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
		log.Printf("Warning: Failed to save session ID: %v", err)
	}
	return nil
}

// play resets the session before every attempt and walks until the board
// is won, the strategy runs dry or MaxMoves is reached
func play(ctx context.Context, client *Client, strategy *RandomWalkStrategy, opts Options) (Outcome, error) {
	var outcome Outcome

	for outcome.Attempts < opts.MaxAttempts {
		outcome.Attempts++

		state, err := client.Reset()
		if err != nil {
			return outcome, err
		}
		strategy.Reset()

		moves := 0
		for !state.Won && moves < opts.MaxMoves {
			if err := ctx.Err(); err != nil {
				return outcome, err
			}

			m, ok := strategy.NextMove(state)
			if !ok {
				log.Printf("⚠️  No legal moves available")
				break
			}

			next, err := client.Move(m.Car, m.Move)
			if err != nil {
				return outcome, err
			}
			state = next
			moves++

			if opts.Verbose && moves%100 == 0 {
				log.Printf("Attempt %d: %d moves, %d distinct layouts", outcome.Attempts, moves, strategy.Distinct())
			}
			if opts.Delay > 0 {
				time.Sleep(opts.Delay)
			}
		}

		logAttempt(outcome.Attempts, moves, strategy, state)
		if state.Won {
			outcome.Won = true
			outcome.Moves = moves
			return outcome, nil
		}
	}

	return outcome, nil
}

func logAttempt(attempt, moves int, strategy *RandomWalkStrategy, state *service.GameState) {
	log.Printf("Attempt %d: Moves=%d, Layouts=%d, Won=%t", attempt, moves, strategy.Distinct(), state.Won)
}
