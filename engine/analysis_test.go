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

package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hxqdev/cchess"
	"github.com/stretchr/testify/require"
)

func TestAnalysisStream_NextDrainsQueuedInfoInOrder(t *testing.T) {
	a := NewAnalysisStream(nil)
	d1, d2 := 1, 2
	a.PushInfo(Info{Depth: &d1})
	a.PushInfo(Info{Depth: &d2})

	ctx := context.Background()
	info, err := a.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, *info.Depth)

	info, err = a.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, *info.Depth)
}

func TestAnalysisStream_PushInfoDropsOldestWhenFull(t *testing.T) {
	a := NewAnalysisStream(nil)
	for i := 0; i < analysisBufSize+5; i++ {
		d := i
		a.PushInfo(Info{Depth: &d})
	}

	ctx := context.Background()
	info, err := a.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, *info.Depth)
}

func TestAnalysisStream_NextReportsCompleteAfterResolve(t *testing.T) {
	a := NewAnalysisStream(nil)
	a.PushInfo(Info{})
	a.Resolve(BestMove{})

	ctx := context.Background()
	_, err := a.Next(ctx)
	require.NoError(t, err)

	_, err = a.Next(ctx)
	require.ErrorIs(t, err, ErrAnalysisComplete)
}

func TestAnalysisStream_BestMoveWaitsForResolve(t *testing.T) {
	a := NewAnalysisStream(nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		best, err := a.BestMove(context.Background())
		require.NoError(t, err)
		require.Equal(t, "h2e2", best.Move.UCI())
	}()

	move, err := cchess.ParseUCIMove("h2e2")
	require.NoError(t, err)
	a.Resolve(BestMove{Move: &move})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BestMove did not unblock after Resolve")
	}
}

func TestAnalysisStream_FailPropagatesToBestMoveAndCompletesNext(t *testing.T) {
	a := NewAnalysisStream(nil)
	wantErr := errors.New("engine crashed")
	a.Fail(wantErr)

	_, err := a.BestMove(context.Background())
	require.ErrorIs(t, err, wantErr)

	_, err = a.Next(context.Background())
	require.ErrorIs(t, err, ErrAnalysisComplete)
}

func TestAnalysisStream_StopInvokesCancelFunc(t *testing.T) {
	called := false
	a := NewAnalysisStream(func(ctx context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, a.Stop(context.Background()))
	require.True(t, called)
}

func TestAnalysisStream_StopIsNoOpWithNilCancel(t *testing.T) {
	a := NewAnalysisStream(nil)
	require.NoError(t, a.Stop(context.Background()))
}

func TestAnalysisStream_NextRespectsCtxCancellation(t *testing.T) {
	a := NewAnalysisStream(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
