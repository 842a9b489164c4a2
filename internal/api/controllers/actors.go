package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"filmledger/internal/api/middleware"
	"filmledger/internal/models"
	"filmledger/internal/services"
)

// ActorController exposes actors together with their cast reconciliation.
type ActorController struct {
	actors *services.ActorService
	casts  *services.CastService
}

func NewActorController(actors *services.ActorService, casts *services.CastService) *ActorController {
	return &ActorController{actors: actors, casts: casts}
}

// ActorListItem is one row of the actor list, with the number of visible
// movies the actor appears in and a thumbnail path.
type ActorListItem struct {
	models.Actor
	MovieCount   int    `json:"movieCount"`
	PrimaryPhoto string `json:"primaryPhoto,omitempty"`
}

// List returns every actor visible to the caller.
// @Summary List actors
// @Tags actors
// @Produce json
// @Success 200 {array} controllers.ActorListItem
// @Router /api/v1/actors [get]
func (ac *ActorController) List(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	ctx := c.Request().Context()
	actors, err := ac.actors.List(ctx, principal)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(actors))
	for i := range actors {
		ids = append(ids, actors[i].ID)
	}
	counts, err := ac.casts.MovieCountByActorIDs(ctx, principal, ids)
	if err != nil {
		return err
	}
	photos, err := ac.actors.PrimaryPhotosByActorIDs(ctx, ids)
	if err != nil {
		return err
	}

	items := make([]ActorListItem, 0, len(actors))
	for i := range actors {
		items = append(items, ActorListItem{
			Actor:        actors[i],
			MovieCount:   counts[actors[i].ID],
			PrimaryPhoto: photos[actors[i].ID],
		})
	}
	return c.JSON(http.StatusOK, items)
}

// ActorDetail is an actor plus, when requested via ?movieId=, the role
// the actor plays in that movie.
type ActorDetail struct {
	models.Actor
	Role *services.CastMemberView `json:"role,omitempty"`
}

// Get returns one actor. With ?movieId= the response carries the
// actor's role in that movie.
// @Summary Get an actor
// @Tags actors
// @Produce json
// @Param id path string true "Actor ID"
// @Param movieId query string false "Movie ID to resolve the actor's role in"
// @Success 200 {object} controllers.ActorDetail
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/actors/{id} [get]
func (ac *ActorController) Get(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	ctx := c.Request().Context()
	actor, err := ac.actors.GetForView(ctx, c.Param("id"), principal)
	if err != nil {
		return err
	}
	detail := ActorDetail{Actor: *actor}
	if movieID := c.QueryParam("movieId"); movieID != "" {
		role, err := ac.casts.RoleForMovie(ctx, actor.ID, movieID)
		if err != nil {
			return err
		}
		detail.Role = role
	}
	return c.JSON(http.StatusOK, detail)
}

// Credits returns the actor's filmography, scoped to visible movies.
// @Summary List an actor's credits
// @Tags actors
// @Produce json
// @Param id path string true "Actor ID"
// @Success 200 {array} services.ActorCreditView
// @Router /api/v1/actors/{id}/credits [get]
func (ac *ActorController) Credits(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	credits, err := ac.casts.CastByActorForView(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, credits)
}

// Create stores a new actor and reconciles its initial castings.
// @Summary Create an actor
// @Tags actors
// @Accept json
// @Produce json
// @Param request body services.ActorInput true "Actor"
// @Success 201 {object} models.Actor
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/actors [post]
func (ac *ActorController) Create(c echo.Context) error {
	var input services.ActorInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	principal := middleware.GetPrincipal(c)
	actor, err := ac.actors.Create(c.Request().Context(), principal, &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, actor)
}

// Update renames an actor and reconciles its castings against the
// desired set.
// @Summary Update an actor
// @Tags actors
// @Accept json
// @Produce json
// @Param id path string true "Actor ID"
// @Param request body services.ActorInput true "Actor"
// @Success 200 {object} models.Actor
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/actors/{id} [put]
func (ac *ActorController) Update(c echo.Context) error {
	var input services.ActorInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	principal := middleware.GetPrincipal(c)
	actor, err := ac.actors.Update(c.Request().Context(), principal, c.Param("id"), &input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}

// Delete removes an actor, its cast rows and its photos.
// @Summary Delete an actor
// @Tags actors
// @Param id path string true "Actor ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/actors/{id} [delete]
func (ac *ActorController) Delete(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if err := ac.actors.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Photos lists an actor's photos, primary first.
// @Summary List actor photos
// @Tags actors
// @Produce json
// @Param id path string true "Actor ID"
// @Success 200 {array} models.ActorPhoto
// @Router /api/v1/actors/{id}/photos [get]
func (ac *ActorController) Photos(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	photos, err := ac.actors.ListPhotos(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photos)
}

// DeletePhoto removes one photo.
// @Summary Delete an actor photo
// @Tags actors
// @Param id path string true "Actor ID"
// @Param photoId path string true "Photo ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/actors/{id}/photos/{photoId} [delete]
func (ac *ActorController) DeletePhoto(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if err := ac.actors.DeletePhoto(c.Request().Context(), principal, c.Param("id"), c.Param("photoId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
