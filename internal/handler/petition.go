package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/repository"
)

// PetitionHandler implements the title petition endpoints.  Listing
// is public (with a richer response for logged-in users); creating
// and voting require authentication.  Voting is a toggle: a second
// vote by the same user removes the first.
type PetitionHandler struct {
	Petitions *repository.PetitionRepo
}

func NewPetitionHandler(petitions *repository.PetitionRepo) *PetitionHandler {
	if petitions == nil {
		panic("nil repository passed to NewPetitionHandler")
	}
	return &PetitionHandler{Petitions: petitions}
}

// List handles GET /v1/petitions.  Petitions come back newest first
// with vote counts; user_has_voted is filled in when the request
// carried a valid bearer token (JWTOptional middleware).
func (h *PetitionHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		userID = 0 // guest
	}
	items, err := h.Petitions.List(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load petitions"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Create handles POST /v1/petitions.  Both fields are required after
// trimming whitespace.
func (h *PetitionHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		MovieTitle  string `json:"movie_title" form:"movie_title"`
		Description string `json:"description" form:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.MovieTitle = strings.TrimSpace(req.MovieTitle)
	req.Description = strings.TrimSpace(req.Description)
	if req.MovieTitle == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please fill in all fields"})
	}

	p, err := h.Petitions.Create(c.Request().Context(), req.MovieTitle, req.Description, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create petition"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":          p.ID,
		"movie_title": p.MovieTitle,
		"description": p.Description,
		"created_by":  p.CreatedBy,
		"created_at":  p.CreatedAt,
		"message":     "Petition created successfully!",
	})
}

// Vote handles POST /v1/petitions/:id/vote.  If the user already
// voted, the vote is removed; otherwise it is added.  Two successive
// calls by the same user return the vote set to its original state.
func (h *PetitionHandler) Vote(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	petitionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid petition id"})
	}

	ctx := c.Request().Context()
	p, err := h.Petitions.GetByID(ctx, petitionID)
	if err != nil {
		if errors.Is(err, repository.ErrPetitionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "petition not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	voted := !p.HasUserVoted(userID)
	message := "Thank you for voting!"
	if voted {
		err = h.Petitions.AddVote(ctx, petitionID, userID)
	} else {
		err = h.Petitions.RemoveVote(ctx, petitionID, userID)
		message = "Your vote has been removed."
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update vote"})
	}

	votes, err := h.Petitions.CountVotes(ctx, petitionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to count votes"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"voted":   voted,
		"votes":   votes,
		"message": message,
	})
}
