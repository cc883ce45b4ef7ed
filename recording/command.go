// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/gghello/render"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdBeginDraw    CommandType = iota // Start a batch
	CmdSetTransform                    // Replace the transformation matrix
	CmdClear                           // Fill the surface with a color
	CmdDrawLine                        // Stroke a line segment
	CmdFillRect                        // Fill a rectangle
	CmdStrokeRect                      // Stroke a rectangle outline
	CmdEndDraw                         // Finish the batch
)

var commandTypeNames = [...]string{
	CmdBeginDraw:    "BeginDraw",
	CmdSetTransform: "SetTransform",
	CmdClear:        "Clear",
	CmdDrawLine:     "DrawLine",
	CmdFillRect:     "FillRect",
	CmdStrokeRect:   "StrokeRect",
	CmdEndDraw:      "EndDraw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all recorded commands.
type Command interface {
	Type() CommandType
}

// BeginDrawCommand starts a batch.
type BeginDrawCommand struct{}

func (BeginDrawCommand) Type() CommandType { return CmdBeginDraw }

// SetTransformCommand replaces the transformation matrix.
type SetTransformCommand struct {
	Matrix gg.Matrix
}

func (SetTransformCommand) Type() CommandType { return CmdSetTransform }

// ClearCommand fills the whole surface.
type ClearCommand struct {
	Color gg.RGBA
}

func (ClearCommand) Type() CommandType { return CmdClear }

// DrawLineCommand strokes the segment P0-P1.
type DrawLineCommand struct {
	P0, P1 gg.Point
	Color  gg.RGBA
	Width  float64
}

func (DrawLineCommand) Type() CommandType { return CmdDrawLine }

// FillRectCommand fills a rectangle.
type FillRectCommand struct {
	Rect  render.Rect
	Color gg.RGBA
}

func (FillRectCommand) Type() CommandType { return CmdFillRect }

// StrokeRectCommand strokes a rectangle outline.
type StrokeRectCommand struct {
	Rect  render.Rect
	Color gg.RGBA
	Width float64
}

func (StrokeRectCommand) Type() CommandType { return CmdStrokeRect }

// EndDrawCommand finishes a batch.
type EndDrawCommand struct{}

func (EndDrawCommand) Type() CommandType { return CmdEndDraw }

// Recording is one completed batch.
type Recording struct {
	// Size is the logical surface size while the batch was recorded.
	Size render.Size

	// Commands holds the batch in issue order, BeginDraw and EndDraw included.
	Commands []Command
}

// Count returns how many commands of type t the recording holds.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, c := range r.Commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Filter returns the commands of type t in issue order.
func (r *Recording) Filter(t CommandType) []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}
