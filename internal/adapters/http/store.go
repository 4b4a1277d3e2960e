package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"svw.info/polygen/internal/domain"
)

type saveReq struct {
	puzzleReq
	ID string `json:"id,omitempty"`
}

type saveResp struct {
	ID string `json:"id"`
}

func (h *Handler) handleSave(c *gin.Context) {
	var req saveReq
	p := bind(c, &req, &req.Puzzle)
	if p == nil {
		return
	}
	p.ID = req.ID
	id, err := h.UC.Save(c.Request.Context(), p)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, saveResp{ID: id})
}

type loadResp struct {
	ID     string          `json:"id"`
	Puzzle json.RawMessage `json:"puzzle"`
}

func (h *Handler) handleLoad(c *gin.Context) {
	id := c.Param("id")
	p, err := h.UC.Load(c.Request.Context(), id)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, loadResp{ID: p.ID, Puzzle: encode(p)})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
}

func (h *Handler) handleList(c *gin.Context) {
	ps, err := h.UC.List(c.Request.Context())
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	if ps == nil {
		ps = []domain.PuzzleMeta{}
	}
	c.JSON(http.StatusOK, listResp{Puzzles: ps})
}

func (h *Handler) handleDelete(c *gin.Context) {
	if err := h.UC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}
