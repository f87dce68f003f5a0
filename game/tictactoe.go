package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Player is the side to move.
type Player int8

const (
	None Player = iota
	Cross
	Nought
)

func (p Player) String() string {
	switch p {
	case Cross:
		return "X"
	case Nought:
		return "O"
	}
	return "."
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	switch p {
	case Cross:
		return Nought
	case Nought:
		return Cross
	}
	return None
}

const (
	RowNum = 3
	ColNum = 3
)

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// TicTacToe is an immutable tic-tac-toe position. Action i places the mover's mark on cell i.
type TicTacToe struct {
	board [RowNum * ColNum]Player
	turn  Player
	moves int
}

// NewTicTacToe returns the empty board with Cross to move.
func NewTicTacToe() TicTacToe { return TicTacToe{turn: Cross} }

func (g TicTacToe) ActionSpace() int { return RowNum * ColNum }

// LegalActionMask marks every empty cell, or nothing once the game has ended.
func (g TicTacToe) LegalActionMask() []bool {
	retVal := make([]bool, g.ActionSpace())
	if ended, _ := g.Ended(); ended {
		return retVal
	}
	for i, p := range g.board {
		retVal[i] = p == None
	}
	return retVal
}

// Turn returns the player to move next.
func (g TicTacToe) Turn() Player { return g.turn }

// MoveNumber returns count of moves so far.
func (g TicTacToe) MoveNumber() int { return g.moves }

// Apply plays action for the player to move.
func (g TicTacToe) Apply(action int) (TicTacToe, error) {
	if action < 0 || action >= g.ActionSpace() {
		return g, errors.Errorf("action %d is outside the board", action)
	}
	if !g.LegalActionMask()[action] {
		return g, errors.Errorf("action %d is not legal", action)
	}
	g.board[action] = g.turn
	g.turn = g.turn.Opponent()
	g.moves++
	return g, nil
}

// Ended reports whether the game is over and who won. A draw has winner None.
func (g TicTacToe) Ended() (ended bool, winner Player) {
	for _, l := range lines {
		p := g.board[l[0]]
		if p != None && p == g.board[l[1]] && p == g.board[l[2]] {
			return true, p
		}
	}
	return g.moves == len(g.board), None
}

func (g TicTacToe) String() string {
	var sb strings.Builder
	for r := 0; r < RowNum; r++ {
		for c := 0; c < ColNum; c++ {
			sb.WriteString(g.board[r*ColNum+c].String())
		}
		if r < RowNum-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
