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

package uci

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/hxqdev/cchess/engine"
)

// ProtocolName is the dialect name callers pass to select UCI, mirroring
// how other engine drivers key their own protocol constant.
const ProtocolName = "uci"

// Protocol implements engine.Protocol for the UCI wire dialect. Every field
// below is per-engine state (options/config/targetConfig, id, game
// identity, ponder state); all of it is touched only from commands
// running on the owning Driver's loop goroutine, so no locking is needed.
type Protocol struct {
	driver *engine.Driver

	options      map[string]engine.Option // declared by the engine, keyed lowercase
	config       *engine.OptionMap        // values last actually sent
	targetConfig *engine.OptionMap        // desired values set via Configure/opponent info

	id map[string]string

	game         string // root FEN of the game currently in progress, for ucinewgame bookkeeping
	firstGame    bool
	opponentSent string // UCI_Opponent value last actually written to the wire

	// pondering is non-nil while a speculative "go ponder" search is in
	// flight, so Play can decide between "ponderhit" and stop-and-restart.
	pondering *pondering
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

func (s boardSnapshot) equal(o boardSnapshot) bool {
	if s.rootFEN != o.rootFEN || len(s.moves) != len(o.moves) {
		return false
	}
	for i := range s.moves {
		if s.moves[i] != o.moves[i] {
			return false
		}
	}
	return true
}

// New wraps driver in a UCI Protocol.
func New(driver *engine.Driver) *Protocol {
	return &Protocol{
		driver:       driver,
		options:      map[string]engine.Option{},
		config:       engine.NewOptionMap(),
		targetConfig: engine.NewOptionMap(),
		id:           map[string]string{},
		firstGame:    true,
	}
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
	cmd := &pingCommand{}
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

func (p *Protocol) SendOpponentInformation(ctx context.Context, opponent engine.OpponentInfo) error {
	if _, ok := p.options["uci_opponent"]; !ok {
		return nil
	}
	rating := "none"
	if opponent.Rating != nil {
		rating = strconv.Itoa(*opponent.Rating)
	}
	title := opponent.Title
	if title == "" {
		title = "none"
	}
	kind := "human"
	if opponent.IsEngine {
		kind = "computer"
	}
	name := opponent.Name
	if name == "" {
		return nil
	}
	target := engine.NewOptionMap()
	target.Set("UCI_Opponent", strings.Join([]string{title, rating, kind, name}, " "))
	return p.Configure(ctx, target)
}

// SendGameResult is a no-op: UCI has no standard wire command for reporting
// a finished game's outcome to the engine.
func (p *Protocol) SendGameResult(ctx context.Context, board engine.Board, result engine.GameResult) error {
	return nil
}

func (p *Protocol) Play(ctx context.Context, board engine.Board, limit engine.Limit, ponder bool) (engine.PlayResult, error) {
	snap, err := snapshotOf(board)
	if err != nil {
		return engine.PlayResult{}, err
	}
	if p.pondering != nil {
		if p.pondering.snap.equal(snap) {
			hit := p.pondering
			p.pondering = nil
			if err := p.driver.WriteLine("ponderhit"); err != nil {
				return engine.PlayResult{}, err
			}
			return hit.result.Wait(ctx)
		}
		if err := p.driver.CancelCurrent(ctx); err != nil {
			return engine.PlayResult{}, err
		}
		p.pondering = nil
	}

	cmd := &playCommand{proto: p, board: board, limit: limit, ponder: ponder, snap: snap, turn: board.Turn()}
	handle := engine.NewHandle[engine.PlayResult](cmd)
	cmd.handle = handle
	if err := p.driver.Submit(handle); err != nil {
		return engine.PlayResult{}, err
	}
	return handle.Result.Wait(ctx)
}

func (p *Protocol) Analyse(ctx context.Context, board engine.Board, limit engine.Limit) (*engine.AnalysisStream, error) {
	snap, err := snapshotOf(board)
	if err != nil {
		return nil, err
	}
	cmd := &analyseCommand{proto: p, board: board, limit: limit, snap: snap, turn: board.Turn()}
	handle := engine.NewHandle[*engine.AnalysisStream](cmd)
	cmd.handle = handle
	if err := p.driver.Submit(handle); err != nil {
		return nil, err
	}
	return handle.Result.Wait(ctx)
}

// ensureNewGame sends "ucinewgame" whenever board's root position differs
// from the one the last search started from, on the very first search, or
// when the stashed UCI_Opponent value has changed since it was last actually
// sent; in that case it also reports (via its bool result) that the caller
// must wait for "readyok" before proceeding. Grounded on original_source's
// _ucinewgame/_opponent_info and the opponent_changed check in
// UciPlayCommand.start.
func (p *Protocol) ensureNewGame(w engine.Writer, board engine.Board) (bool, error) {
	fen, err := board.RootFEN()
	if err != nil {
		return false, err
	}
	opponent, _ := p.config.Get("UCI_Opponent")
	needNew := p.firstGame || p.game != fen || opponent != p.opponentSent
	if !needNew {
		return false, nil
	}
	p.firstGame = false
	p.game = fen
	if err := w.WriteLine("ucinewgame"); err != nil {
		return false, err
	}
	if opponent != "" {
		if err := w.WriteLine("setoption name UCI_Opponent value " + opponent); err != nil {
			return false, err
		}
	}
	p.opponentSent = opponent
	return true, nil
}

// applyManagedPlayOptions forces Ponder to the requested value, clears
// UCI_AnalyseMode unless the caller has already configured it explicitly,
// and resets MultiPV to its declared default, per Play steps 2-3. Grounded
// on original_source's UciPlayCommand.start.
func (p *Protocol) applyManagedPlayOptions(w engine.Writer, ponder bool) error {
	if _, ok := p.options["uci_analysemode"]; ok {
		if _, overridden := p.targetConfig.Get("UCI_AnalyseMode"); !overridden {
			if err := p.setOption(w, "UCI_AnalyseMode", "false"); err != nil {
				return err
			}
		}
	}
	if _, ok := p.options["ponder"]; ok {
		if err := p.setOption(w, "Ponder", strconv.FormatBool(ponder)); err != nil {
			return err
		}
	}
	if opt, ok := p.options["multipv"]; ok {
		if err := p.setOption(w, "MultiPV", opt.Default); err != nil {
			return err
		}
	}
	return nil
}

// applyManagedAnalyseOptions disables Ponder and forces UCI_AnalyseMode on
// unless the caller has already configured it explicitly, and sets MultiPV
// to 1 (this port exposes no per-call multipv override, so the "multipv or
// 1" rule always resolves to 1), per the Analysis section. Grounded on
// original_source's UciAnalysisCommand.start.
func (p *Protocol) applyManagedAnalyseOptions(w engine.Writer) error {
	if _, ok := p.options["ponder"]; ok {
		if err := p.setOption(w, "Ponder", "false"); err != nil {
			return err
		}
	}
	if _, ok := p.options["uci_analysemode"]; ok {
		if _, overridden := p.targetConfig.Get("UCI_AnalyseMode"); !overridden {
			if err := p.setOption(w, "UCI_AnalyseMode", "true"); err != nil {
				return err
			}
		}
	}
	if _, ok := p.options["multipv"]; ok {
		if err := p.setOption(w, "MultiPV", "1"); err != nil {
			return err
		}
	}
	return nil
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

// setOption records name's new value in p.config and, if it actually
// changed, emits "setoption" — except for UCI_Opponent, which is stashed
// into p.config without ever being sent here: ensureNewGame sends it, once,
// right after the next "ucinewgame". Grounded on original_source's
// _setoption, which carries the identical `if name != "UCI_Opponent"` guard.
func (p *Protocol) setOption(w engine.Writer, name, value string) error {
	opt, ok := p.options[strings.ToLower(name)]
	if !ok {
		return engine.NewEngineError("engine does not support option %q", name)
	}
	parsed, err := opt.Parse(value)
	if err != nil {
		return err
	}
	if cur, ok := p.config.Get(name); ok && cur == parsed {
		return nil
	}
	if !strings.EqualFold(name, "UCI_Opponent") {
		line := "setoption name " + name
		if opt.Type != engine.OptionButton {
			line += " value " + parsed
		}
		if err := w.WriteLine(line); err != nil {
			return err
		}
	}
	p.config.Set(name, parsed)
	return nil
}

// applyConfig applies every entry of target (falling back to
// p.targetConfig for anything target doesn't mention) via setOption,
// rejecting managed option names outright. On success it returns the merged
// map so the caller can persist it as the new desired configuration.
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
