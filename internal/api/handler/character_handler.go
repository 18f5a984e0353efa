package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/characters/characters-api/internal/core/ports"
)

type CharacterHandler struct {
	svc ports.CharacterService
}

func NewCharacterHandler(svc ports.CharacterService) *CharacterHandler {
	return &CharacterHandler{svc: svc}
}

// List godoc
//
// @Summary      List characters
// @Tags         characters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Character
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /characters [get]
func (h *CharacterHandler) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
//
// @Summary      Get a character
// @Tags         characters
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Character ID"
// @Success      200  {object}  domain.Character
// @Failure      404  {object}  map[string]string
// @Router       /characters/{id} [get]
func (h *CharacterHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ch, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ch)
}

// Create godoc
//
// @Summary      Create a character
// @Tags         characters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ports.CharacterInput  true  "Character"
// @Success      201   {object}  domain.Character
// @Failure      400   {object}  map[string]string
// @Router       /characters [post]
func (h *CharacterHandler) Create(c echo.Context) error {
	var in ports.CharacterInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	ch, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ch)
}

// Update godoc
//
// @Summary      Replace a character
// @Tags         characters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Character ID"
// @Param        body  body      ports.CharacterInput  true  "Character"
// @Success      200   {object}  domain.Character
// @Failure      404   {object}  map[string]string
// @Router       /characters/{id} [put]
func (h *CharacterHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in ports.CharacterInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	ch, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ch)
}

// Delete godoc
//
// @Summary      Delete a character
// @Tags         characters
// @Security     BearerAuth
// @Param        id   path  int  true  "Character ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /characters/{id} [delete]
func (h *CharacterHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
