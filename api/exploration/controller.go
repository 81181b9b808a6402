package exploration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dpersh/robot/infrastruture/repo"
	"github.com/dpersh/robot/service"
	"github.com/dpersh/robot/service/i"
	"github.com/dpersh/robot/world"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultLeaderboardSize = 10

// Controller serves exploration runs, their reports and the leaderboard.
type Controller struct {
	explorer i.Explorer
}

// NewController initializes a Controller.
func NewController(e i.Explorer) *Controller {
	return &Controller{explorer: e}
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/explorations/:ID", c.report)
	route.GET("/leaderboard", c.leaderboard)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/explorations", c.run)
}

// run starts an exploration and responds with its report, maps included.
func (c *Controller) run(ctx *gin.Context) {
	var request RunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (request.StartRow == nil) != (request.StartCol == nil) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "start_row and start_col go together"})
		return
	}

	report, err := c.explorer.Run(ctx.Request.Context(), i.RunParams{
		Width:    request.Width,
		Height:   request.Height,
		Density:  request.Density,
		Seed:     request.Seed,
		StartRow: request.StartRow,
		StartCol: request.StartCol,
	})
	if err != nil {
		if errors.Is(err, world.ErrInvalidDimensions) || errors.Is(err, service.ErrInvalidStart) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "exploration failed"})
		return
	}

	ctx.JSON(http.StatusCreated, report)
}

// report retrieves a stored exploration report.
func (c *Controller) report(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	report, err := c.explorer.ByID(ctx.Request.Context(), ID)
	switch {
	case errors.Is(err, repo.ErrReportNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	case errors.Is(err, service.ErrReportsDisabled):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "loading report failed"})
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// leaderboard lists the best runs for a world size.
func (c *Controller) leaderboard(ctx *gin.Context) {
	width, errW := strconv.Atoi(ctx.DefaultQuery("width", "0"))
	height, errH := strconv.Atoi(ctx.DefaultQuery("height", "0"))
	n, errN := strconv.ParseInt(ctx.DefaultQuery("n", strconv.Itoa(defaultLeaderboardSize)), 10, 64)
	if errW != nil || errH != nil || errN != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "width, height and n must be integers"})
		return
	}

	top, err := c.explorer.Leaderboard(ctx.Request.Context(), width, height, n)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"runs": top})
}
