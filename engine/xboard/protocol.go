// Copyright (C) 2025 Brigham Skarda

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package xboard

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/hxqdev/cchess"
	"github.com/hxqdev/cchess/engine"
)

// ProtocolName is the dialect name callers pass to select XBoard/CECP.
const ProtocolName = "xboard"

// Protocol implements engine.Protocol for the XBoard/CECP wire dialect.
// Every field is touched only from commands running on the owning Driver's
// loop goroutine, so no locking is needed.
type Protocol struct {
	driver *engine.Driver

	features map[string]string        // raw "feature" values, keyed by name
	options  map[string]engine.Option // declared options, keyed by exact name

	config       *engine.OptionMap
	targetConfig *engine.OptionMap

	id map[string]string

	shadow    boardSnapshot // position currently synced to the engine
	game      string
	firstGame bool

	pingSeq int
}

type boardSnapshot struct {
	rootFEN string
	moves   []string
}

func snapshotOf(board engine.Board) (boardSnapshot, error) {
	fen, err := board.RootFEN()
	if err != nil {
		return boardSnapshot{}, err
	}
	return boardSnapshot{rootFEN: fen, moves: append([]string(nil), board.Moves()...)}, nil
}

// New wraps driver in an XBoard Protocol, seeded with the fixed options
// original_source's XBoardProtocol.__init__ declares before any "feature"
// negotiation occurs.
func New(driver *engine.Driver) *Protocol {
	return &Protocol{
		driver: driver,
		features: map[string]string{},
		options: map[string]engine.Option{
			"random":          {Name: "random", Type: engine.OptionCheck, Default: "false"},
			"computer":        {Name: "computer", Type: engine.OptionCheck, Default: "false"},
			"name":            {Name: "name", Type: engine.OptionString, Default: ""},
			"engine_rating":   {Name: "engine_rating", Type: engine.OptionSpin, Default: "0"},
			"opponent_rating": {Name: "opponent_rating", Type: engine.OptionSpin, Default: "0"},
		},
		config:       engine.NewOptionMap(),
		targetConfig: engine.NewOptionMap(),
		id:           map[string]string{},
		firstGame:    true,
	}
}

// featureBool reports name's declared feature value as a boolean: a numeric
// value is nonzero/zero, any other stored string (including the empty
// string a bare value leaves) counts as true, and an undeclared feature
// falls back to def.
func (p *Protocol) featureBool(name string, def bool) bool {
	v, ok := p.features[name]
	if !ok {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n != 0
	}
	return true
}

// featureInt reports name's declared feature value as an integer, and
// whether it was declared as one at all.
func (p *Protocol) featureInt(name string) (int, bool) {
	v, ok := p.features[name]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p *Protocol) Initialize(ctx context.Context) (engine.InitializeResult, error) {
	cmd := &initializeCommand{proto: p}
	handle := engine.NewHandle[engine.InitializeResult](cmd)
	cmd.handle = handle
	if err := p.driver.Submit(handle); err != nil {
		return engine.InitializeResult{}, err
	}
	return handle.Result.Wait(ctx)
}

func (p *Protocol) Ping(ctx context.Context) error {
	cmd := &pingCommand{proto: p}
	handle := engine.NewHandle[struct{}](cmd)
	cmd.handle = handle
	if err := p.driver.Submit(handle); err != nil {
		return err
	}
	_, err := handle.Result.Wait(ctx)
	return err
}

func (p *Protocol) Configure(ctx context.Context, target *engine.OptionMap) error {
	cmd := &configureCommand{proto: p, target: target}
	handle := engine.NewHandle[struct{}](cmd)
	cmd.handle = handle
	if err := p.driver.Submit(handle); err != nil {
		return err
	}
	_, err := handle.Result.Wait(ctx)
	return err
}

// SendOpponentInformation configures the "name"/"opponent_rating"/"computer"
// options _opponent_configuration derives from opponent; these are only
// ever sent on the wire as part of the next "new" game setup (syncPosition),
// per original_source's convention.
func (p *Protocol) SendOpponentInformation(ctx context.Context, opponent engine.OpponentInfo) error {
	target := engine.NewOptionMap()
	rating := 0
	if opponent.Rating != nil {
		rating = *opponent.Rating
	}
	target.Set("opponent_rating", strconv.Itoa(rating))
	target.Set("computer", boolStr(opponent.IsEngine))
	if er, ok := p.targetConfig.Get("engine_rating"); ok {
		target.Set("engine_rating", er)
	} else {
		target.Set("engine_rating", "0")
	}
	if opponent.Name != "" && p.featureBool("name", true) {
		target.Set("name", strings.TrimSpace(opponent.Title+" "+opponent.Name))
	}
	return p.Configure(ctx, target)
}

func (p *Protocol) SendGameResult(ctx context.Context, board engine.Board, result engine.GameResult) error {
	cmd := &gameResultCommand{proto: p, board: board, result: result}
	handle := engine.NewHandle[struct{}](cmd)
	cmd.handle = handle
	if err := p.driver.Submit(handle); err != nil {
		return err
	}
	_, err := handle.Result.Wait(ctx)
	return err
}

func (p *Protocol) Play(ctx context.Context, board engine.Board, limit engine.Limit, ponder bool) (engine.PlayResult, error) {
	cmd := &playCommand{proto: p, board: board, limit: limit, ponder: ponder, turn: board.Turn()}
	handle := engine.NewHandle[engine.PlayResult](cmd)
	cmd.handle = handle
	if err := p.driver.Submit(handle); err != nil {
		return engine.PlayResult{}, err
	}
	return handle.Result.Wait(ctx)
}

func (p *Protocol) Analyse(ctx context.Context, board engine.Board, limit engine.Limit) (*engine.AnalysisStream, error) {
	cmd := &analyseCommand{proto: p, board: board, limit: limit, turn: board.Turn()}
	handle := engine.NewHandle[*engine.AnalysisStream](cmd)
	cmd.handle = handle
	if err := p.driver.Submit(handle); err != nil {
		return nil, err
	}
	return handle.Result.Wait(ctx)
}

func (p *Protocol) Quit(ctx context.Context) error {
	cmd := &quitCommand{}
	handle := engine.NewHandle[struct{}](cmd)
	cmd.handle = handle
	err := p.driver.Submit(handle)
	if err == nil {
		_, err = handle.Result.Wait(ctx)
	}
	closeErr := p.driver.Close(2*time.Second, 2*time.Second)
	return errors.Join(err, closeErr)
}

// syncPosition brings the engine's position in line with board, grounded on
// original_source's _new: a full "new"/"force"/"setboard" resync whenever
// the game has changed (or this is the very first position ever sent),
// otherwise an incremental "remove"/"undo" unwind down to the common
// prefix followed by replaying the remaining moves. Per-call option/
// opponent overrides are out of scope here (unlike original_source's _new,
// which takes them as parameters) because engine.Protocol models Configure
// and SendOpponentInformation as separate top-level calls, the same
// simplification engine/uci's ensureNewGame makes.
func (p *Protocol) syncPosition(w engine.Writer, board engine.Board) error {
	snap, err := snapshotOf(board)
	if err != nil {
		return err
	}

	newGame := p.firstGame || p.shadow.rootFEN != snap.rootFEN
	p.firstGame = false
	p.game = snap.rootFEN

	if newGame {
		if err := w.WriteLine("new"); err != nil {
			return err
		}
		if v, _ := p.config.Get("random"); v == "true" {
			if err := w.WriteLine("random"); err != nil {
				return err
			}
		}
		if name, _ := p.config.Get("name"); name != "" {
			if err := w.WriteLine("name " + name); err != nil {
				return err
			}
		}
		engineRating, _ := p.config.Get("engine_rating")
		opponentRating, _ := p.config.Get("opponent_rating")
		if nonZero(engineRating) || nonZero(opponentRating) {
			if err := w.WriteLine("rating " + orZero(engineRating) + " " + orZero(opponentRating)); err != nil {
				return err
			}
		}
		if v, _ := p.config.Get("computer"); v == "true" {
			if err := w.WriteLine("computer"); err != nil {
				return err
			}
		}
		if err := w.WriteLine("force"); err != nil {
			return err
		}
		if snap.rootFEN != cchess.DefaultFEN {
			if err := w.WriteLine("setboard " + snap.rootFEN); err != nil {
				return err
			}
		}
		p.shadow = boardSnapshot{rootFEN: snap.rootFEN}
	} else {
		if err := w.WriteLine("force"); err != nil {
			return err
		}
	}

	common := 0
	if !newGame {
		for common < len(p.shadow.moves) && common < len(snap.moves) && p.shadow.moves[common] == snap.moves[common] {
			common++
		}
	}
	for len(p.shadow.moves) > common+1 {
		if err := w.WriteLine("remove"); err != nil {
			return err
		}
		p.shadow.moves = p.shadow.moves[:len(p.shadow.moves)-2]
	}
	for len(p.shadow.moves) > common {
		if err := w.WriteLine("undo"); err != nil {
			return err
		}
		p.shadow.moves = p.shadow.moves[:len(p.shadow.moves)-1]
	}

	prefix := ""
	if p.featureBool("usermove", false) {
		prefix = "usermove "
	}
	for _, mv := range snap.moves[common:] {
		if err := w.WriteLine(prefix + mv); err != nil {
			return err
		}
		p.shadow.moves = append(p.shadow.moves, mv)
	}
	return nil
}

func nonZero(s string) bool { return s != "" && s != "0" }

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// setOption records name's new value and, unless it belongs to one of the
// option categories original_source's _setoption applies only through
// syncPosition ("new"/"random"/"name"/"rating"/"computer"), emits the
// appropriate wire line for it.
func (p *Protocol) setOption(w engine.Writer, name, value string) error {
	opt, ok := p.options[name]
	if !ok {
		return engine.NewEngineError("unsupported xboard option or command: %q", name)
	}
	if cur, ok := p.config.Get(name); ok && cur == value {
		return nil
	}
	parsed, err := opt.Parse(value)
	if err != nil {
		return err
	}
	p.config.Set(name, parsed)

	switch {
	case name == "random", name == "computer", name == "name", name == "engine_rating", name == "opponent_rating":
		return nil
	case name == "memory" || name == "cores" || strings.HasPrefix(name, "egtpath "):
		return w.WriteLine(name + " " + parsed)
	case opt.Type == engine.OptionCheck:
		if parsed == "true" {
			return w.WriteLine("option " + name + "=1")
		}
		return w.WriteLine("option " + name + "=0")
	default:
		return w.WriteLine("option " + name + "=" + parsed)
	}
}

// applyConfig applies every entry of target (falling back to
// p.targetConfig for anything target doesn't mention) via setOption,
// rejecting managed option names outright, and returns the merged map so
// the caller can persist it as the new desired configuration.
func (p *Protocol) applyConfig(w engine.Writer, target *engine.OptionMap) (*engine.OptionMap, error) {
	merged := p.targetConfig.Clone()
	if target != nil {
		target.Range(func(name, value string) bool {
			merged.Set(name, value)
			return true
		})
	}
	var err error
	merged.Range(func(name, value string) bool {
		if engine.IsManaged(name) {
			err = engine.NewEngineError("cannot set %q, which is automatically managed", name)
			return false
		}
		err = p.setOption(w, name, value)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

var _ engine.Protocol = (*Protocol)(nil)
