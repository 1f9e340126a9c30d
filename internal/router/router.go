package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/jane-devs/final-management/internal/auth"
	"github.com/jane-devs/final-management/internal/config"
	"github.com/jane-devs/final-management/internal/handler"
	"github.com/jane-devs/final-management/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userService service.UserService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	teamHandler *handler.TeamHandler,
	taskHandler *handler.TaskHandler,
	meetingHandler *handler.MeetingHandler,
	commentHandler *handler.CommentHandler,
	evaluationHandler *handler.EvaluationHandler,
	calendarHandler *handler.CalendarHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication and an active account)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), handler.LoadActor(userService))

	// User routes
	secured.GET("/me", userHandler.Me)
	secured.PATCH("/me", userHandler.UpdateProfile)
	secured.GET("/users", userHandler.ListUsers)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PATCH("/users/:id", userHandler.UpdateProfile)
	secured.POST("/users/:id/deactivate", userHandler.Deactivate)

	// Team routes
	secured.POST("/teams", teamHandler.CreateTeam)
	secured.GET("/teams", teamHandler.ListMyTeams)
	secured.GET("/teams/:id", teamHandler.GetTeam)
	secured.PUT("/teams/:id", teamHandler.UpdateTeam)
	secured.DELETE("/teams/:id", teamHandler.DeleteTeam)
	secured.POST("/teams/join", teamHandler.JoinTeam)
	secured.GET("/teams/:id/members", teamHandler.ListMembers)
	secured.POST("/teams/:id/members", teamHandler.AddMember)
	secured.DELETE("/teams/:id/members/:userId", teamHandler.RemoveMember)
	secured.POST("/teams/:id/leave", teamHandler.LeaveTeam)
	secured.POST("/teams/:id/transfer", teamHandler.TransferOwnership)

	// Task routes
	secured.POST("/teams/:id/tasks", taskHandler.CreateTask)
	secured.GET("/teams/:id/tasks", taskHandler.ListTeamTasks)
	secured.GET("/tasks/:id", taskHandler.GetTask)
	secured.PATCH("/tasks/:id", taskHandler.UpdateTask)
	secured.DELETE("/tasks/:id", taskHandler.DeleteTask)
	secured.POST("/tasks/:id/assign", taskHandler.AssignTask)
	secured.POST("/tasks/:id/complete", taskHandler.CompleteTask)

	// Meeting routes
	secured.POST("/teams/:id/meetings", meetingHandler.CreateMeeting)
	secured.GET("/teams/:id/meetings", meetingHandler.ListTeamMeetings)
	secured.GET("/meetings/:id", meetingHandler.GetMeeting)
	secured.PUT("/meetings/:id", meetingHandler.UpdateMeeting)
	secured.DELETE("/meetings/:id", meetingHandler.DeleteMeeting)

	// Comment routes
	secured.POST("/tasks/:id/comments", commentHandler.CreateComment)
	secured.GET("/tasks/:id/comments", commentHandler.ListTaskComments)
	secured.PUT("/comments/:id", commentHandler.UpdateComment)
	secured.DELETE("/comments/:id", commentHandler.DeleteComment)

	// Evaluation routes
	secured.POST("/evaluations", evaluationHandler.CreateEvaluation)
	secured.DELETE("/evaluations/:id", evaluationHandler.DeleteEvaluation)
	secured.GET("/evaluations/given", evaluationHandler.ListGiven)
	secured.GET("/users/:id/evaluations", evaluationHandler.ListForSubject)
	secured.GET("/users/:id/evaluations/stats", evaluationHandler.SubjectStats)
	secured.GET("/tasks/:id/evaluations", evaluationHandler.ListForTask)

	// Calendar routes
	secured.GET("/calendar/day", calendarHandler.DayView)
	secured.GET("/calendar/month", calendarHandler.MonthView)
	secured.GET("/calendar/today", calendarHandler.DayView)
	secured.GET("/calendar/current-month", calendarHandler.MonthView)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
