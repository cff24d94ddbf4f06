package main

import (
	"strconv"
	"strings"

	"github.com/vango-dev/elementview/internal/errors"
)

// parseResize splits "plot=200x100" into an id and a size.
func parseResize(s string) (string, float64, float64, error) {
	bad := func() (string, float64, float64, error) {
		return "", 0, 0, errors.New("E500").
			WithDetailf("invalid --resize %q", s).
			WithSuggestion("Use ID=WIDTHxHEIGHT, for example plot=200x100")
	}
	id, size, ok := strings.Cut(s, "=")
	if !ok || id == "" {
		return bad()
	}
	ws, hs, ok := strings.Cut(size, "x")
	if !ok {
		return bad()
	}
	w, errW := strconv.ParseFloat(ws, 64)
	h, errH := strconv.ParseFloat(hs, 64)
	if errW != nil || errH != nil || w < 0 || h < 0 {
		return bad()
	}
	return id, w, h, nil
}
