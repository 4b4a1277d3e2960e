package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"svw.info/polygen/internal/codec"
	"svw.info/polygen/internal/domain"
	"svw.info/polygen/internal/render"
	"svw.info/polygen/internal/usecase"
)

// MaxSolutions caps how many solutions one solve request may enumerate.
const MaxSolutions = 100

type Handler struct {
	UC *usecase.Service
	// SolveTimeout bounds solve, generate and hint requests; zero means no
	// bound beyond the request context.
	SolveTimeout time.Duration
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/rotate", h.handleRotate)
	api.POST("/render", h.handleRender)
	api.POST("/solve", h.handleSolve)
	api.POST("/generate", h.handleGenerate)
	api.POST("/validate", h.handleValidate)
	api.POST("/hint", h.handleHint)
	api.POST("/share", h.handleShare)
	api.POST("/export.xlsx", h.handleExport)
	api.POST("/save", h.handleSave)
	api.GET("/load/:id", h.handleLoad)
	api.GET("/list", h.handleList)
	api.DELETE("/puzzles/:id", h.handleDelete)
}

func (h *Handler) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.SolveTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.SolveTimeout)
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPuzzle),
		errors.Is(err, domain.ErrVolumeMismatch),
		errors.Is(err, domain.ErrPieceNotInFamily):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// puzzleReq is embedded by every request that carries a puzzle in the
// exchange format.
type puzzleReq struct {
	Puzzle json.RawMessage `json:"puzzle"`
}

// bind decodes the request body into req and the embedded puzzle. It
// answers 400 itself and returns nil on failure.
func bind(c *gin.Context, req any, raw *json.RawMessage) *domain.Puzzle {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return nil
	}
	if len(*raw) == 0 || string(*raw) == "null" {
		fail(c, http.StatusBadRequest, errors.New("missing puzzle"))
		return nil
	}
	p, err := codec.Unmarshal(*raw)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return nil
	}
	return p
}

func encode(p *domain.Puzzle) json.RawMessage {
	b, err := codec.Marshal(p)
	if err != nil {
		return nil
	}
	return b
}

// ---- Rotate ----

type rotateReq struct {
	puzzleReq
	Axis string `json:"axis"`
	Dir  string `json:"dir,omitempty"`
}

type rotateResp struct {
	Puzzle json.RawMessage `json:"puzzle"`
	Dims   domain.Dims     `json:"dims"`
}

func (h *Handler) handleRotate(c *gin.Context) {
	var req rotateReq
	p := bind(c, &req, &req.Puzzle)
	if p == nil {
		return
	}
	axis, err := domain.ParseAxis(req.Axis)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	dir := domain.Right
	if axis == domain.Vertical {
		dir = domain.Up
	}
	if req.Dir != "" {
		if dir, err = domain.ParseDirection(req.Dir); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
	}
	out := h.UC.Rotate(p, axis, dir)
	c.JSON(http.StatusOK, rotateResp{Puzzle: encode(out), Dims: out.Dims()})
}

// ---- Render ----

type renderReq struct {
	puzzleReq
	Reveal int `json:"reveal,omitempty"`
}

type tileJSON struct {
	domain.Pos
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Label       string `json:"label"`
	Translucent bool   `json:"translucent,omitempty"`
}

type renderResp struct {
	Tiles  []tileJSON `json:"tiles"`
	Canvas []string   `json:"canvas"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
}

func (h *Handler) handleRender(c *gin.Context) {
	var req renderReq
	p := bind(c, &req, &req.Puzzle)
	if p == nil {
		return
	}
	tiles := h.UC.Render(p, req.Reveal)
	out := make([]tileJSON, len(tiles))
	for i, t := range tiles {
		out[i] = tileJSON{Pos: t.Pos, X: t.X, Y: t.Y, Label: t.Piece.String(), Translucent: t.Translucent}
	}
	w, ht := render.Bounds(tiles)
	c.JSON(http.StatusOK, renderResp{Tiles: out, Canvas: render.Canvas(tiles), Width: w, Height: ht})
}

// ---- Solve ----

type solveReq struct {
	puzzleReq
	Limit int `json:"limit,omitempty"`
}

type solveResp struct {
	Puzzle     json.RawMessage `json:"puzzle,omitempty"`
	Added      int             `json:"added"`
	DurationMs int64           `json:"durationMs,omitempty"`
	Nodes      int             `json:"nodes,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func (h *Handler) handleSolve(c *gin.Context) {
	var req solveReq
	p := bind(c, &req, &req.Puzzle)
	if p == nil {
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 1
	}
	limit = min(limit, MaxSolutions)
	ctx, cancel := h.bounded(c.Request.Context())
	defer cancel()
	added, st, err := h.UC.SolveInto(ctx, p, limit)
	if err != nil {
		c.JSON(statusFor(err), solveResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
		return
	}
	c.JSON(http.StatusOK, solveResp{
		Puzzle:     encode(p),
		Added:      added,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Generate ----

type generateReq struct {
	Family string `json:"family,omitempty"`
	Seed   int64  `json:"seed,omitempty"`
}

type generateResp struct {
	Puzzle     json.RawMessage `json:"puzzle,omitempty"`
	Seed       int64           `json:"seed,omitempty"`
	Difficulty string          `json:"difficulty,omitempty"`
	DurationMs int64           `json:"durationMs,omitempty"`
	Nodes      int             `json:"nodes,omitempty"`
}

func (h *Handler) handleGenerate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength != 0 {
		fail(c, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}
	family := domain.Soma
	if strings.TrimSpace(req.Family) != "" {
		f, err := domain.ParseFamily(req.Family)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		family = f
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ctx, cancel := h.bounded(c.Request.Context())
	defer cancel()
	p, st, err := h.UC.Generate(ctx, seed, family)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, generateResp{
		Puzzle:     encode(p),
		Seed:       seed,
		Difficulty: p.Difficulty.String(),
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Validate / Hint ----

// solutionReq names one solution of the puzzle by index.
type solutionReq struct {
	puzzleReq
	Solution int `json:"solution"`
}

func pick(c *gin.Context, p *domain.Puzzle, i int) *domain.Solution {
	if i < 0 || i >= len(p.Solutions) {
		fail(c, http.StatusBadRequest, fmt.Errorf("solution %d out of range (puzzle has %d)", i, len(p.Solutions)))
		return nil
	}
	return &p.Solutions[i]
}

type validateResp struct {
	OK        bool         `json:"ok"`
	Conflicts []domain.Pos `json:"conflicts,omitempty"`
}

func (h *Handler) handleValidate(c *gin.Context) {
	var req solutionReq
	p := bind(c, &req, &req.Puzzle)
	if p == nil {
		return
	}
	s := pick(c, p, req.Solution)
	if s == nil {
		return
	}
	ok, conflicts, err := h.UC.Validate(c.Request.Context(), p, s)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, validateResp{OK: ok, Conflicts: conflicts})
}

type hintResp struct {
	Found   bool         `json:"found"`
	Piece   string       `json:"piece,omitempty"`
	Cells   []domain.Pos `json:"cells,omitempty"`
	Message string       `json:"message,omitempty"`
}

func (h *Handler) handleHint(c *gin.Context) {
	var req solutionReq
	p := bind(c, &req, &req.Puzzle)
	if p == nil {
		return
	}
	s := pick(c, p, req.Solution)
	if s == nil {
		return
	}
	ctx, cancel := h.bounded(c.Request.Context())
	defer cancel()
	hh, ok, err := h.UC.Hint(ctx, p, s)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	resp := hintResp{Found: ok, Cells: hh.Cells, Message: hh.Message}
	if ok {
		resp.Piece = hh.Piece.String()
	}
	c.JSON(http.StatusOK, resp)
}

// ---- Share / Export ----

type shareReq struct {
	puzzleReq
	Base string `json:"base,omitempty"`
}

func (h *Handler) handleShare(c *gin.Context) {
	var req shareReq
	p := bind(c, &req, &req.Puzzle)
	if p == nil {
		return
	}
	base := req.Base
	if base == "" {
		base = "http://" + c.Request.Host + "/"
	}
	u, err := codec.ShareURL(base, p)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": u})
}

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) handleExport(c *gin.Context) {
	var req puzzleReq
	p := bind(c, &req, &req.Puzzle)
	if p == nil {
		return
	}
	var buf bytes.Buffer
	if err := h.UC.Export(&buf, p); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	name := p.Name
	if name == "" {
		name = "puzzle"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	c.Data(http.StatusOK, xlsxType, buf.Bytes())
}
