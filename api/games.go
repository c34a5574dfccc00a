package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Command names used in CommandError and log lines.
const (
	CmdCreateDemo = "create-demo"
	CmdStart      = "start"
	CmdAdvance    = "advance"
	CmdResolve    = "resolve"
	CmdAddFiller  = "add-filler"
	CmdTickFiller = "tick-filler"
)

const (
	MinFillers = 1
	MaxFillers = 5
)

// CommandError is a rejected or undeliverable command.
type CommandError struct {
	Action string
	Status int // 0 when the request never got a response
	Detail string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Action + " failed"
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func gamePath(id, rest string) string {
	return "/games/" + url.PathEscape(id) + rest
}

// GetState fetches the current snapshot of a game.
func (c *Client) GetState(ctx context.Context, id string) Result[GameSnapshot] {
	if id == "" {
		return Unavailable[GameSnapshot](ErrNoGame)
	}
	return getJSON[GameSnapshot](ctx, c, gamePath(id, "/state"))
}

// GetFeed fetches up to limit feed items, most recent first.
func (c *Client) GetFeed(ctx context.Context, id string, limit int) Result[[]FeedItem] {
	if id == "" {
		return Unavailable[[]FeedItem](ErrNoGame)
	}
	r := getJSON[feedResponse](ctx, c, gamePath(id, fmt.Sprintf("/feed?limit=%d", limit)))
	feed, ok := r.Get()
	if !ok {
		return Unavailable[[]FeedItem](r.Cause())
	}
	return Available(feed.Items)
}

// GetScoreboard fetches scores and role coverage.
func (c *Client) GetScoreboard(ctx context.Context, id string) Result[Scoreboard] {
	if id == "" {
		return Unavailable[Scoreboard](ErrNoGame)
	}
	return getJSON[Scoreboard](ctx, c, gamePath(id, "/scoreboard"))
}

// CreateDemo asks the server for a fresh demo game.
func (c *Client) CreateDemo(ctx context.Context) (CreateDemoResponse, error) {
	var out CreateDemoResponse
	data, err := c.do(ctx, http.MethodPost, "/demo/create", nil)
	if err != nil {
		return out, commandError(CmdCreateDemo, data, err)
	}
	if err := json.Unmarshal(data, &out); err != nil || out.GameID == "" {
		return out, &CommandError{Action: CmdCreateDemo, Detail: "server returned no game id", Err: err}
	}
	return out, nil
}

// PostCommand sends a game-mutating request. body may be nil.
func (c *Client) PostCommand(ctx context.Context, id, action string, body any) (CommandResponse, error) {
	var out CommandResponse
	if id == "" {
		return out, &CommandError{Action: action, Detail: ErrNoGame.Error(), Err: ErrNoGame}
	}
	data, err := c.do(ctx, http.MethodPost, gamePath(id, "/"+action), body)
	if err != nil {
		return out, commandError(action, data, err)
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return out, &CommandError{Action: action, Detail: "unreadable response from server", Err: err}
		}
	}
	return out, nil
}

func (c *Client) Start(ctx context.Context, id string) (CommandResponse, error) {
	return c.PostCommand(ctx, id, CmdStart, nil)
}

// Advance moves the round forward; AdvanceResolveRound resolves it instead.
func (c *Client) Advance(ctx context.Context, id string, action AdvanceAction) (CommandResponse, error) {
	resp, err := c.PostCommand(ctx, id, CmdAdvance, map[string]string{"action": string(action)})
	var cerr *CommandError
	if action == AdvanceResolveRound && errors.As(err, &cerr) {
		cerr.Action = CmdResolve
	}
	return resp, err
}

// AddFiller adds count filler agents, clamped to [MinFillers, MaxFillers].
func (c *Client) AddFiller(ctx context.Context, id string, count int) (CommandResponse, error) {
	return c.PostCommand(ctx, id, CmdAddFiller, map[string]int{"count": ClampFillers(count)})
}

func (c *Client) TickFiller(ctx context.Context, id string) (CommandResponse, error) {
	return c.PostCommand(ctx, id, CmdTickFiller, nil)
}

// ClampFillers bounds a filler count to what the server accepts.
func ClampFillers(n int) int {
	return max(MinFillers, min(MaxFillers, n))
}

// commandError pulls the server's detail (or message) out of an error body.
func commandError(action string, body []byte, err error) *CommandError {
	ce := &CommandError{Action: action, Err: err}
	var se *StatusError
	if errors.As(err, &se) {
		ce.Status = se.Code
		var payload struct {
			Detail  any    `json:"detail"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			switch d := payload.Detail.(type) {
			case string:
				ce.Detail = d
			case nil:
			default:
				if b, err := json.Marshal(d); err == nil {
					ce.Detail = string(b)
				}
			}
			if ce.Detail == "" {
				ce.Detail = payload.Message
			}
		}
		if ce.Detail == "" {
			ce.Detail = http.StatusText(se.Code)
		}
	}
	return ce
}
